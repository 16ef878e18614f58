// Package facade is the uniform data-access surface of the service. Every
// call is tried against the upstream backend first; on any transport failure
// the same operation is re-executed against the local store, and callers
// receive an identical response envelope either way. Only a path with no
// local equivalent surfaces the original transport error.
package facade

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "sustainshare/internal/errors"
	"sustainshare/internal/model"
	"sustainshare/internal/remote"
	"sustainshare/internal/service"
)

// Envelope is the uniform response shape {data: ...}.
type Envelope struct {
	Data json.RawMessage `json:"data"`
}

// Facade routes logical operations to the upstream API or the local
// services.
type Facade struct {
	remote    *remote.Client
	donations service.DonationService
	pickups   service.PickupService
	auth      service.AuthService
	users     service.UserService
	stats     service.StatsService
}

// New wires the facade over the upstream client and the local services.
func New(
	remoteClient *remote.Client,
	donations service.DonationService,
	pickups service.PickupService,
	auth service.AuthService,
	users service.UserService,
	stats service.StatsService,
) *Facade {
	return &Facade{
		remote:    remoteClient,
		donations: donations,
		pickups:   pickups,
		auth:      auth,
		users:     users,
		stats:     stats,
	}
}

// Get performs a GET against the upstream, falling back locally.
func (f *Facade) Get(ctx context.Context, path string) (*Envelope, error) {
	return f.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST against the upstream, falling back locally.
func (f *Facade) Post(ctx context.Context, path string, body []byte) (*Envelope, error) {
	return f.do(ctx, http.MethodPost, path, body)
}

// Put performs a PUT against the upstream, falling back locally.
func (f *Facade) Put(ctx context.Context, path string, body []byte) (*Envelope, error) {
	return f.do(ctx, http.MethodPut, path, body)
}

// Delete performs a DELETE against the upstream, falling back locally.
func (f *Facade) Delete(ctx context.Context, path string) (*Envelope, error) {
	return f.do(ctx, http.MethodDelete, path, nil)
}

func (f *Facade) do(ctx context.Context, method, path string, body []byte) (*Envelope, error) {
	payload, remoteErr := f.remote.Do(ctx, method, path, body)
	if remoteErr == nil {
		return &Envelope{Data: payload}, nil
	}

	data, err := f.fallback(ctx, method, path, body)
	if err == errUnmatchedPath {
		// No local equivalent: the transport failure is the caller's
		// problem, not something to paper over with empty data.
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFeatureUnavailable, remoteErr)
	}
	if err != nil {
		return nil, err
	}
	return &Envelope{Data: data}, nil
}

var errUnmatchedPath = fmt.Errorf("no local handler for path")

// fallback pattern-matches (method, path) to the equivalent local operation.
func (f *Facade) fallback(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	parts := strings.Split(strings.Trim(path, "/"), "/")

	switch method {
	case http.MethodGet:
		switch {
		case path == "/food":
			return f.respond(f.donations.List(ctx))
		case len(parts) == 2 && parts[0] == "food":
			return f.respond(f.donations.Get(ctx, parts[1]))
		case len(parts) == 3 && parts[0] == "pickups" && parts[1] == "food":
			return f.respond(f.pickups.GetByFoodID(ctx, parts[2]))
		case path == "/stats" || path == "/stats/summary":
			return f.respond(f.stats.Summary(ctx))
		case path == "/users":
			return f.respond(f.users.List(ctx))
		}

	case http.MethodPost:
		switch path {
		case "/food":
			return f.createDonation(ctx, body)
		case "/pickups":
			return f.createPickup(ctx, body)
		case "/auth/signup":
			return f.signup(ctx, body)
		case "/auth/login":
			return f.login(ctx, body)
		}

	case http.MethodPut:
		switch {
		case len(parts) == 3 && parts[0] == "food" && parts[2] == "claim":
			return f.claimDonation(ctx, parts[1], body)
		case len(parts) == 3 && parts[0] == "food" && parts[2] == "status":
			return f.updateDonationStatus(ctx, parts[1], body)
		case len(parts) == 3 && parts[0] == "users" && parts[2] == "role":
			return f.updateUserRole(ctx, parts[1], body)
		case len(parts) == 3 && parts[0] == "users" && parts[2] == "status":
			return f.updateUserStatus(ctx, parts[1], body)
		}

	case http.MethodDelete:
		switch {
		case len(parts) == 2 && parts[0] == "food":
			if err := f.donations.Delete(ctx, parts[1]); err != nil {
				return nil, err
			}
			return json.Marshal(map[string]string{"message": "donation deleted"})
		case len(parts) == 2 && parts[0] == "users":
			if err := f.users.Remove(ctx, parts[1]); err != nil {
				return nil, err
			}
			return json.Marshal(map[string]string{"message": "user deleted"})
		}
	}

	return nil, errUnmatchedPath
}

// respond serializes a successful service result into envelope data.
func (f *Facade) respond(result interface{}, err error) (json.RawMessage, error) {
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

type createDonationBody struct {
	Name           string      `json:"name"`
	Quantity       string      `json:"quantity"`
	Category       string      `json:"category"`
	PickupLocation string      `json:"pickupLocation"`
	Coordinates    *[2]float64 `json:"coordinates"`
	ExpiryTime     time.Time   `json:"expiryTime"`
	Description    string      `json:"description"`
	Allergens      string      `json:"allergens"`
	DonorID        string      `json:"donorId"`
}

func (f *Facade) createDonation(ctx context.Context, body []byte) (json.RawMessage, error) {
	var req createDonationBody
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode donation body: %w", err)
	}
	return f.respond(f.donations.Create(ctx, service.CreateDonationInput{
		Name:           req.Name,
		Quantity:       req.Quantity,
		Category:       req.Category,
		PickupLocation: req.PickupLocation,
		Coordinates:    req.Coordinates,
		ExpiryTime:     req.ExpiryTime,
		Description:    req.Description,
		Allergens:      req.Allergens,
		DonorID:        req.DonorID,
	}))
}

func (f *Facade) claimDonation(ctx context.Context, id string, body []byte) (json.RawMessage, error) {
	var req struct {
		CharityID string `json:"charityId"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode claim body: %w", err)
	}
	return f.respond(f.donations.Claim(ctx, id, req.CharityID))
}

func (f *Facade) updateDonationStatus(ctx context.Context, id string, body []byte) (json.RawMessage, error) {
	var req struct {
		Status  model.DonationStatus `json:"status"`
		ActorID string               `json:"actorId"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode status body: %w", err)
	}
	return f.respond(f.donations.UpdateStatus(ctx, id, req.Status, req.ActorID))
}

func (f *Facade) createPickup(ctx context.Context, body []byte) (json.RawMessage, error) {
	var req struct {
		FoodItemID    string    `json:"foodItemId"`
		CharityID     string    `json:"charityId"`
		ScheduledTime time.Time `json:"scheduledTime"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode pickup body: %w", err)
	}
	return f.respond(f.pickups.Create(ctx, service.CreatePickupInput{
		FoodItemID:    req.FoodItemID,
		CharityID:     req.CharityID,
		ScheduledTime: req.ScheduledTime,
	}))
}

func (f *Facade) signup(ctx context.Context, body []byte) (json.RawMessage, error) {
	var req struct {
		ID       string         `json:"id"`
		Name     string         `json:"name"`
		Username string         `json:"username"`
		Email    string         `json:"email"`
		Password string         `json:"password"`
		Role     model.UserRole `json:"role"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode signup body: %w", err)
	}
	user, err := f.auth.Signup(ctx, service.SignupInput{
		ID:       req.ID,
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return nil, err
	}
	token, _, err := f.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]interface{}{"token": token, "user": user})
}

func (f *Facade) login(ctx context.Context, body []byte) (json.RawMessage, error) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode login body: %w", err)
	}
	token, user, err := f.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]interface{}{"token": token, "user": user})
}

func (f *Facade) updateUserRole(ctx context.Context, id string, body []byte) (json.RawMessage, error) {
	var req struct {
		Role model.UserRole `json:"role"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode role body: %w", err)
	}
	return f.respond(f.users.UpdateRole(ctx, id, req.Role))
}

func (f *Facade) updateUserStatus(ctx context.Context, id string, body []byte) (json.RawMessage, error) {
	var req struct {
		Status model.UserStatus `json:"status"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("decode status body: %w", err)
	}
	return f.respond(f.users.SetStatus(ctx, id, req.Status))
}
