package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/samandr77/microservices/advances/internal/clients/gateway"
	"github.com/samandr77/microservices/advances/internal/dashboard"
	"github.com/samandr77/microservices/advances/internal/entity"
)

var (
	errCredentialsRequired = errors.New("username and password required (--user/--password or RTCTL_USER/RTCTL_PASSWORD)")
	errAdminOnly           = fmt.Errorf("%w: only admins can do this", entity.ErrForbidden)
	errRecordNotFound      = errors.New("record not found")
)

const msgLoginNetworkError = "Network error. Please try again."

// session is one signed-in run of the CLI. All changes go through the
// dashboard reducer.
type session struct {
	client *gateway.Client
	state  dashboard.State
}

func openSession(ctx context.Context, o *options) (*session, error) {
	if o.user == "" || o.password == "" {
		return nil, errCredentialsRequired
	}

	c := gateway.NewClient(o.url, o.timeout)

	user, err := c.Login(ctx, o.user, o.password)
	if err != nil {
		var apiErr *gateway.Error
		if errors.As(err, &apiErr) {
			return nil, errors.New(apiErr.Message)
		}

		return nil, fmt.Errorf("%s: %w", msgLoginNetworkError, err)
	}

	s := &session{client: c.As(user.Username), state: dashboard.NewState()}
	s.dispatch(dashboard.LoggedIn{User: user})

	return s, nil
}

func (s *session) dispatch(a dashboard.Action) {
	s.state = dashboard.Reduce(s.state, a)
}

func (s *session) load(ctx context.Context) error {
	records, err := s.client.Records(ctx)
	if err != nil {
		return s.fail(err, dashboard.MsgLoadFailed)
	}

	s.dispatch(dashboard.RecordsLoaded{Records: records})

	return nil
}

// fail records the failure notice. Errors that never reached the gateway
// are reported as network errors.
func (s *session) fail(err error, msg string) error {
	var apiErr *gateway.Error
	if !errors.As(err, &apiErr) {
		msg = dashboard.MsgNetworkError
	}

	s.dispatch(dashboard.Failed{Message: msg})

	return fmt.Errorf("%s: %w", msg, err)
}

func (s *session) find(id string) (entity.Record, error) {
	rec, ok := s.state.Find(id)
	if !ok {
		return entity.Record{}, fmt.Errorf("%w: %s", errRecordNotFound, id)
	}

	return rec, nil
}
