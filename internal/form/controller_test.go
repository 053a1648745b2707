package form

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/internal/validation"
)

type forwardCall struct {
	ctx    context.Context
	values map[string]string
}

// recorder is a Forwarder that reports each call on a channel.
type recorder struct {
	calls chan forwardCall
	err   error
}

func newRecorder(err error) *recorder {
	return &recorder{calls: make(chan forwardCall, 8), err: err}
}

func (r *recorder) forward(ctx context.Context, values map[string]string) error {
	r.calls <- forwardCall{ctx: ctx, values: values}
	return r.err
}

func (r *recorder) next(t *testing.T) forwardCall {
	t.Helper()
	select {
	case call := <-r.calls:
		return call
	case <-time.After(time.Second):
		t.Fatal("forwarder was not called")
		return forwardCall{}
	}
}

func (r *recorder) none(t *testing.T) {
	t.Helper()
	select {
	case call := <-r.calls:
		t.Fatalf("unexpected forward with %v", call.values)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRegistration_SingleWordName(t *testing.T) {
	rec := newRecorder(nil)
	c := NewRegistration(rec.forward)

	require.NoError(t, c.Set(validation.FieldName, "Jo"))
	require.NoError(t, c.Set(validation.FieldEmail, "a@b.com"))
	require.NoError(t, c.Set(validation.FieldPassword, "longenough"))

	outcome := c.Submit(context.Background())

	assert.Equal(t, Skipped, outcome)
	assert.Equal(t, validation.FieldErrors{validation.FieldName: {validation.MsgNameTwoWords}}, c.Errors())
	rec.none(t)
}

func TestLogin_BothFieldsReported(t *testing.T) {
	rec := newRecorder(nil)
	c := NewLogin(rec.forward)

	c.Load(map[string]string{
		validation.FieldEmail:    "bad-email",
		validation.FieldPassword: "1234567",
	})

	outcome := c.Submit(context.Background())

	assert.Equal(t, Skipped, outcome)
	assert.Equal(t, []string{validation.FieldEmail, validation.FieldPassword}, c.Errors().Fields())
	rec.none(t)
}

func TestLogin_ValidForwardsOnce(t *testing.T) {
	rec := newRecorder(nil)
	c := NewLogin(rec.forward)

	c.Load(map[string]string{
		validation.FieldEmail:    "user@site.com",
		validation.FieldPassword: "password123",
	})

	outcome := c.Submit(context.Background())

	assert.Equal(t, Forwarded, outcome)
	assert.Nil(t, c.Errors())
	assert.Equal(t, Idle, c.State())

	call := rec.next(t)
	assert.Equal(t, "user@site.com", call.values[validation.FieldEmail])
	assert.Equal(t, "password123", call.values[validation.FieldPassword])
	rec.none(t)
}

func TestLogin_ResubmitRevalidatesEveryField(t *testing.T) {
	rec := newRecorder(nil)
	c := NewLogin(rec.forward)

	c.Load(map[string]string{
		validation.FieldEmail:    "bad-email",
		validation.FieldPassword: "short",
	})
	require.Equal(t, Skipped, c.Submit(context.Background()))

	require.NoError(t, c.Set(validation.FieldPassword, "password123"))
	outcome := c.Submit(context.Background())

	assert.Equal(t, Skipped, outcome)
	assert.Equal(t, validation.FieldErrors{validation.FieldEmail: {validation.MsgInvalidEmail}}, c.Errors())
	rec.none(t)

	require.NoError(t, c.Set(validation.FieldEmail, "user@site.com"))
	assert.Equal(t, Forwarded, c.Submit(context.Background()))
	assert.Nil(t, c.Errors())
	rec.next(t)
}

func TestSubmit_DiscardsForwardErrors(t *testing.T) {
	rec := newRecorder(errors.New("identity provider unavailable"))
	c := NewLogin(rec.forward)
	c.Load(map[string]string{
		validation.FieldEmail:    "user@site.com",
		validation.FieldPassword: "password123",
	})

	outcome := c.Submit(context.Background())

	assert.Equal(t, Forwarded, outcome)
	rec.next(t)
	assert.Nil(t, c.Errors())
}

func TestSubmit_ForwardOutlivesRequestContext(t *testing.T) {
	rec := newRecorder(nil)
	c := NewLogin(rec.forward)
	c.Load(map[string]string{
		validation.FieldEmail:    "user@site.com",
		validation.FieldPassword: "password123",
	})

	ctx, cancel := context.WithCancel(context.Background())
	c.Submit(ctx)
	cancel()

	call := rec.next(t)
	assert.NoError(t, call.ctx.Err())
}

func TestSubmit_SurfacesForwardErrors(t *testing.T) {
	rec := newRecorder(errors.New("Incorrect email or password"))
	c := NewLogin(rec.forward, WithErrorPolicy(SurfaceForwardErrors))
	c.Load(map[string]string{
		validation.FieldEmail:    "user@site.com",
		validation.FieldPassword: "password123",
	})

	outcome := c.Submit(context.Background())

	assert.Equal(t, Forwarded, outcome)
	assert.Equal(t, validation.FieldErrors{FormErrorKey: {"Incorrect email or password"}}, c.Errors())
	// synchronous: the call has already happened
	assert.Len(t, rec.calls, 1)
}

func TestSubmit_SnapshotIsDetachedFromFields(t *testing.T) {
	rec := newRecorder(nil)
	c := NewLogin(rec.forward, WithErrorPolicy(SurfaceForwardErrors))
	c.Load(map[string]string{
		validation.FieldEmail:    "user@site.com",
		validation.FieldPassword: "password123",
	})
	c.Submit(context.Background())

	require.NoError(t, c.Set(validation.FieldEmail, "other@site.com"))

	call := rec.next(t)
	assert.Equal(t, "user@site.com", call.values[validation.FieldEmail])
}

func TestSet_UnknownField(t *testing.T) {
	c := NewForgotPassword(newRecorder(nil).forward)

	err := c.Set(validation.FieldPassword, "x")

	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSet_DoesNotValidate(t *testing.T) {
	c := NewLogin(newRecorder(nil).forward)

	require.NoError(t, c.Set(validation.FieldEmail, "bad-email"))

	assert.Nil(t, c.Errors())
	assert.Equal(t, Idle, c.State())
	assert.Equal(t, "bad-email", c.Value(validation.FieldEmail))
}

func TestFields(t *testing.T) {
	c := NewRegistration(newRecorder(nil).forward)
	c.Load(map[string]string{validation.FieldRemember: "on", "unexpected": "x"})

	fields := c.Fields()
	require.Len(t, fields, 4)
	assert.Equal(t, validation.FieldName, fields[0].Name)
	assert.True(t, fields[2].Masked())
	assert.True(t, fields[3].Checked())

	fields[0].Value = "mutated"
	assert.Equal(t, "", c.Value(validation.FieldName))
}

func TestParseErrorPolicy(t *testing.T) {
	assert.Equal(t, SurfaceForwardErrors, ParseErrorPolicy(" Surface "))
	assert.Equal(t, DiscardForwardErrors, ParseErrorPolicy("discard"))
	assert.Equal(t, DiscardForwardErrors, ParseErrorPolicy(""))
}
