package bookingRepository

import (
	"context"
	"strings"

	"jusbook/internal/api/booking"
	"jusbook/internal/entity"
)

func (r *catalogRepository) GetServices(ctx context.Context) ([]entity.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]entity.Service(nil), r.store.services...), nil
}

func (r *catalogRepository) GetServiceByID(ctx context.Context, id string) (entity.Service, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, service := range r.store.services {
		if strings.EqualFold(service.ID, id) {
			return service, nil
		}
	}
	return entity.Service{}, booking.ErrServiceNotFound
}

func (r *catalogRepository) GetEvents(ctx context.Context) ([]entity.Event, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return append([]entity.Event(nil), r.store.events...), nil
}

func (r *catalogRepository) GetContactInfo(ctx context.Context) (entity.ContactInfo, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	contact := r.store.contact
	contact.Social = make(map[string]string, len(r.store.contact.Social))
	for k, v := range r.store.contact.Social {
		contact.Social[k] = v
	}
	return contact, nil
}
