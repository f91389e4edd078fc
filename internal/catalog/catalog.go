package catalog

import (
	"sync"

	"github.com/google/uuid"
)

// Catalog is the process-local collection of help requests, newest first.
// Add is the only mutator. The catalog is not persisted and not shared
// across instances; that is an explicit scope boundary of the service.
type Catalog struct {
	mu       sync.RWMutex
	requests []*HelpRequest
}

func New() *Catalog {
	return &Catalog{requests: make([]*HelpRequest, 0, 32)}
}

// Add prepends a request so that List stays newest-first.
func (c *Catalog) Add(r *HelpRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append([]*HelpRequest{r}, c.requests...)
}

// List returns a copy of the catalog in insertion order, newest first.
func (c *Catalog) List() []*HelpRequest {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*HelpRequest, len(c.requests))
	copy(out, c.requests)
	return out
}

// ListByOwner returns the owner's requests, preserving List order.
func (c *Catalog) ListByOwner(userID uuid.UUID) []*HelpRequest {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*HelpRequest, 0)
	for _, r := range c.requests {
		if r.RequesterID == userID {
			out = append(out, r)
		}
	}
	return out
}

// Get looks up a request by id.
func (c *Catalog) Get(id uuid.UUID) (*HelpRequest, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, r := range c.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, ErrRequestNotFound
}

// Len reports the catalog size.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.requests)
}
