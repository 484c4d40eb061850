package client

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const messagesPath = "/messages"

// MessageStatus is the delivery state of a message.
type MessageStatus string

const (
	MessageQueued    MessageStatus = "queued"
	MessageDelivered MessageStatus = "delivered"
	MessageFailed    MessageStatus = "failed"
)

// Message is a message sent to a contact.
type Message struct {
	ID      uuid.UUID `json:"id"`
	Content string    `json:"content"`
	From    string    `json:"from"`
	To      uuid.UUID `json:"to"`
	// ToContact is filled in by listings that embed the recipient's details.
	ToContact   *Contact      `json:"toContact,omitempty"`
	Status      MessageStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	DeliveredAt *time.Time    `json:"deliveredAt,omitempty"`
}

type CreateMessageRequest struct {
	From    string           `json:"from"`
	Content string           `json:"content"`
	To      MessageRecipient `json:"to"`
}

type MessageRecipient struct {
	ID uuid.UUID `json:"id"`
}

type listMessagesResponse struct {
	Messages []Message `json:"messages"`
	Data     struct {
		Contacts map[uuid.UUID]struct {
			Name  string `json:"name"`
			Phone string `json:"phone"`
		} `json:"contacts"`
	} `json:"data"`
	Page            int `json:"page"`
	QuantityPerPage int `json:"quantityPerPage"`
}

// toPage maps the listing to a page, attaching the recipient contact of each
// message when the listing includes it.
func (r listMessagesResponse) toPage() *Page[Message] {
	items := make([]Message, 0, len(r.Messages))
	for _, m := range r.Messages {
		if c, ok := r.Data.Contacts[m.To]; ok {
			m.ToContact = &Contact{ID: m.To, Name: c.Name, Phone: c.Phone}
		}
		items = append(items, m)
	}
	return &Page[Message]{Items: items, CurrentPage: r.Page, PageSize: r.QuantityPerPage}
}

// MessagesAPI sends and reads messages. API failures are returned as
// *[APIError].
type MessagesAPI interface {
	ListMessages(ctx context.Context) (*Page[Message], error)
	GetMessage(ctx context.Context, id uuid.UUID) (*Message, error)
	SendMessage(ctx context.Context, req CreateMessageRequest) (*Message, error)
	SendMessageTo(ctx context.Context, from, content string, contactID uuid.UUID) (*Message, error)
	// SendMessages sends the same content to every contact, one request per
	// recipient, following the bulk settings of the client.
	SendMessages(ctx context.Context, from, content string, to []Contact) ([]Message, error)
}

type messagesService struct {
	client *Client
	items  MessagesAPI
}

func (s *messagesService) ListMessages(ctx context.Context) (*Page[Message], error) {
	e, err := s.client.executor()
	if err != nil {
		return nil, err
	}

	dto, _, err := send[listMessagesResponse](ctx, e, http.MethodGet, messagesPath, nil)
	if err != nil {
		return nil, err
	}

	return dto.toPage(), nil
}

func (s *messagesService) GetMessage(ctx context.Context, id uuid.UUID) (*Message, error) {
	e, err := s.client.executor()
	if err != nil {
		return nil, err
	}

	msg, _, err := send[Message](ctx, e, http.MethodGet, messagesPath+"/"+id.String(), nil)
	if err != nil {
		return nil, err
	}

	return &msg, nil
}

func (s *messagesService) SendMessage(ctx context.Context, req CreateMessageRequest) (*Message, error) {
	e, err := s.client.executor()
	if err != nil {
		return nil, err
	}

	msg, _, err := send[Message](ctx, e, http.MethodPost, messagesPath, req)
	if err != nil {
		return nil, err
	}

	return &msg, nil
}

func (s *messagesService) SendMessageTo(ctx context.Context, from, content string, contactID uuid.UUID) (*Message, error) {
	return s.SendMessage(ctx, CreateMessageRequest{
		From:    from,
		Content: content,
		To:      MessageRecipient{ID: contactID},
	})
}

func (s *messagesService) SendMessages(ctx context.Context, from, content string, to []Contact) ([]Message, error) {
	return ExecuteBulk(ctx, s.client.options.bulkConfig(), to, func(ctx context.Context, c Contact) (Message, error) {
		msg, err := s.items.SendMessageTo(ctx, from, content, c.ID)
		if err != nil {
			return Message{}, err
		}
		return *msg, nil
	})
}
