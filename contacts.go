package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"
)

const contactsPath = "/contacts"

// Contact is a contact stored by the API. Phone is in E.164 format.
type Contact struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

// CreateContactRequest is the payload for creating a contact.
type CreateContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type listContactsResponse struct {
	PageSize   int       `json:"pageSize"`
	PageNumber int       `json:"pageNumber"`
	Contacts   []Contact `json:"contacts"`
}

func (r listContactsResponse) toPage() *Page[Contact] {
	return &Page[Contact]{Items: r.Contacts, CurrentPage: r.PageNumber, PageSize: r.PageSize}
}

// ContactsAPI manages contacts. Phone numbers are checked against E.164
// before any request is sent; an invalid number yields
// *[InvalidPhoneNumberError]. API failures are returned as *[APIError].
//
// The bulk methods (AddContacts, UpdateContacts, DeleteContacts) issue one
// request per item, sequentially or with bounded parallelism depending on
// [WithBulkOperations]. They stop at the first failure and do not undo items
// that already succeeded.
type ContactsAPI interface {
	// ListContacts returns one page of contacts. pageNumber starts at 1; a
	// pageSize below 1 selects the configured default page size.
	ListContacts(ctx context.Context, pageNumber, pageSize int) (*Page[Contact], error)
	GetContact(ctx context.Context, id uuid.UUID) (*Contact, error)
	AddContact(ctx context.Context, req CreateContactRequest) (*Contact, error)
	AddContacts(ctx context.Context, reqs []CreateContactRequest) ([]Contact, error)
	UpdateContact(ctx context.Context, contact Contact) (*Contact, error)
	UpdateContacts(ctx context.Context, contacts []Contact) ([]Contact, error)
	DeleteContact(ctx context.Context, id uuid.UUID) error
	DeleteContacts(ctx context.Context, ids []uuid.UUID) error
}

type contactsService struct {
	client *Client
	// items receives the single-item calls made by bulk operations. When
	// metrics are enabled it is the instrumented decorator, so every item
	// reports its own metric.
	items ContactsAPI
}

func contactPath(id uuid.UUID) string {
	return contactsPath + "/" + id.String()
}

func (s *contactsService) ListContacts(ctx context.Context, pageNumber, pageSize int) (*Page[Contact], error) {
	e, err := s.client.executor()
	if err != nil {
		return nil, err
	}

	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize < 1 {
		pageSize = s.client.options.defaultPageSize
	}

	query := url.Values{}
	query.Set("pageIndex", strconv.Itoa(pageNumber))
	query.Set("max", strconv.Itoa(pageSize))

	dto, _, err := send[listContactsResponse](ctx, e, http.MethodGet, contactsPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}

	return dto.toPage(), nil
}

func (s *contactsService) GetContact(ctx context.Context, id uuid.UUID) (*Contact, error) {
	e, err := s.client.executor()
	if err != nil {
		return nil, err
	}

	contact, _, err := send[Contact](ctx, e, http.MethodGet, contactPath(id), nil)
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func (s *contactsService) AddContact(ctx context.Context, req CreateContactRequest) (*Contact, error) {
	if err := validatePhone(req.Phone); err != nil {
		return nil, err
	}

	e, err := s.client.executor()
	if err != nil {
		return nil, err
	}

	contact, _, err := send[Contact](ctx, e, http.MethodPost, contactsPath, req)
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func (s *contactsService) AddContacts(ctx context.Context, reqs []CreateContactRequest) ([]Contact, error) {
	for _, req := range reqs {
		if err := validatePhone(req.Phone); err != nil {
			return nil, err
		}
	}

	return ExecuteBulk(ctx, s.client.options.bulkConfig(), reqs, func(ctx context.Context, req CreateContactRequest) (Contact, error) {
		contact, err := s.items.AddContact(ctx, req)
		if err != nil {
			return Contact{}, err
		}
		return *contact, nil
	})
}

func (s *contactsService) UpdateContact(ctx context.Context, contact Contact) (*Contact, error) {
	if err := validatePhone(contact.Phone); err != nil {
		return nil, err
	}

	e, err := s.client.executor()
	if err != nil {
		return nil, err
	}

	body := CreateContactRequest{Name: contact.Name, Phone: contact.Phone}

	updated, _, err := send[Contact](ctx, e, http.MethodPatch, contactPath(contact.ID), body)
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *contactsService) UpdateContacts(ctx context.Context, contacts []Contact) ([]Contact, error) {
	for _, contact := range contacts {
		if err := validatePhone(contact.Phone); err != nil {
			return nil, err
		}
	}

	return ExecuteBulk(ctx, s.client.options.bulkConfig(), contacts, func(ctx context.Context, contact Contact) (Contact, error) {
		updated, err := s.items.UpdateContact(ctx, contact)
		if err != nil {
			return Contact{}, err
		}
		return *updated, nil
	})
}

func (s *contactsService) DeleteContact(ctx context.Context, id uuid.UUID) error {
	e, err := s.client.executor()
	if err != nil {
		return err
	}

	_, err = e.execute(ctx, http.MethodDelete, contactPath(id), nil)
	return err
}

func (s *contactsService) DeleteContacts(ctx context.Context, ids []uuid.UUID) error {
	_, err := ExecuteBulk(ctx, s.client.options.bulkConfig(), ids, func(ctx context.Context, id uuid.UUID) (struct{}, error) {
		return struct{}{}, s.items.DeleteContact(ctx, id)
	})
	return err
}
