package domain

import "context"

// ServicePort defines the service contract for robots
// create and update only accept payloads that went through Check
type ServicePort interface {
	GetAll(ctx context.Context, f Filter) (Envelope, error)
	GetOne(ctx context.Context, id int64) (Envelope, error)
	Create(ctx context.Context, in ValidatedPayload) (Envelope, error)
	Update(ctx context.Context, in ValidatedPayload, id int64) (int64, error)
	UpdatePurpose(ctx context.Context, id int64, purpose string) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
