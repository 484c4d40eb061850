package client

import (
	"context"

	"github.com/google/uuid"
)

// instrumentedContacts reports one metric per call of the wrapped ContactsAPI.
type instrumentedContacts struct {
	next ContactsAPI
	sink MetricSink
}

func (c *instrumentedContacts) ListContacts(ctx context.Context, pageNumber, pageSize int) (*Page[Contact], error) {
	return Measure(ctx, c.sink, "Contacts.ListContacts", 0, func(ctx context.Context) (*Page[Contact], error) {
		return c.next.ListContacts(ctx, pageNumber, pageSize)
	})
}

func (c *instrumentedContacts) GetContact(ctx context.Context, id uuid.UUID) (*Contact, error) {
	return Measure(ctx, c.sink, "Contacts.GetContact", 0, func(ctx context.Context) (*Contact, error) {
		return c.next.GetContact(ctx, id)
	})
}

func (c *instrumentedContacts) AddContact(ctx context.Context, req CreateContactRequest) (*Contact, error) {
	return Measure(ctx, c.sink, "Contacts.AddContact", 0, func(ctx context.Context) (*Contact, error) {
		return c.next.AddContact(ctx, req)
	})
}

func (c *instrumentedContacts) AddContacts(ctx context.Context, reqs []CreateContactRequest) ([]Contact, error) {
	return Measure(ctx, c.sink, "Contacts.AddContacts", len(reqs), func(ctx context.Context) ([]Contact, error) {
		return c.next.AddContacts(ctx, reqs)
	})
}

func (c *instrumentedContacts) UpdateContact(ctx context.Context, contact Contact) (*Contact, error) {
	return Measure(ctx, c.sink, "Contacts.UpdateContact", 0, func(ctx context.Context) (*Contact, error) {
		return c.next.UpdateContact(ctx, contact)
	})
}

func (c *instrumentedContacts) UpdateContacts(ctx context.Context, contacts []Contact) ([]Contact, error) {
	return Measure(ctx, c.sink, "Contacts.UpdateContacts", len(contacts), func(ctx context.Context) ([]Contact, error) {
		return c.next.UpdateContacts(ctx, contacts)
	})
}

func (c *instrumentedContacts) DeleteContact(ctx context.Context, id uuid.UUID) error {
	return MeasureErr(ctx, c.sink, "Contacts.DeleteContact", 0, func(ctx context.Context) error {
		return c.next.DeleteContact(ctx, id)
	})
}

func (c *instrumentedContacts) DeleteContacts(ctx context.Context, ids []uuid.UUID) error {
	return MeasureErr(ctx, c.sink, "Contacts.DeleteContacts", len(ids), func(ctx context.Context) error {
		return c.next.DeleteContacts(ctx, ids)
	})
}

// instrumentedMessages reports one metric per call of the wrapped MessagesAPI.
type instrumentedMessages struct {
	next MessagesAPI
	sink MetricSink
}

func (m *instrumentedMessages) ListMessages(ctx context.Context) (*Page[Message], error) {
	return Measure(ctx, m.sink, "Messages.ListMessages", 0, m.next.ListMessages)
}

func (m *instrumentedMessages) GetMessage(ctx context.Context, id uuid.UUID) (*Message, error) {
	return Measure(ctx, m.sink, "Messages.GetMessage", 0, func(ctx context.Context) (*Message, error) {
		return m.next.GetMessage(ctx, id)
	})
}

func (m *instrumentedMessages) SendMessage(ctx context.Context, req CreateMessageRequest) (*Message, error) {
	return Measure(ctx, m.sink, "Messages.SendMessage", 0, func(ctx context.Context) (*Message, error) {
		return m.next.SendMessage(ctx, req)
	})
}

func (m *instrumentedMessages) SendMessageTo(ctx context.Context, from, content string, contactID uuid.UUID) (*Message, error) {
	return Measure(ctx, m.sink, "Messages.SendMessageTo", 0, func(ctx context.Context) (*Message, error) {
		return m.next.SendMessageTo(ctx, from, content, contactID)
	})
}

func (m *instrumentedMessages) SendMessages(ctx context.Context, from, content string, to []Contact) ([]Message, error) {
	return Measure(ctx, m.sink, "Messages.SendMessages", len(to), func(ctx context.Context) ([]Message, error) {
		return m.next.SendMessages(ctx, from, content, to)
	})
}
