package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-gin-portfolio/internal/core/mail"
	"go-gin-portfolio/internal/domain"
	"go-gin-portfolio/internal/repo"
	dbtest "go-gin-portfolio/internal/testutil"
)

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) Notify(ctx context.Context, c *domain.Contact) NotifyResult {
	return m.Called(ctx, c).Get(0).(NotifyResult)
}

func (m *mockNotifier) TestConfiguration(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type fakeMailer struct {
	configured bool
	err        error
	sent       []mail.Message
}

func (f *fakeMailer) Send(_ context.Context, m mail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m)
	return nil
}
func (f *fakeMailer) Configured() bool { return f.configured }
func (f *fakeMailer) Name() string     { return "fake" }

func validSubmit() SubmitInput {
	return SubmitInput{Name: "Visitor", Email: "Visitor@Example.com", Subject: "Hi", Message: "Nice site", IPAddress: "1.2.3.4"}
}

func TestSubmitPersistsEvenWhenNotifyFails(t *testing.T) {
	ctx := context.Background()
	n := new(mockNotifier)
	n.On("Notify", mock.Anything, mock.AnythingOfType("*domain.Contact")).
		Return(NotifyResult{Status: NotifyFailed, Err: errors.New("smtp down")})
	svc := NewContactService(repo.NewContactRepo(dbtest.NewDB(t)), n, zap.NewNop())

	c, err := svc.Submit(ctx, validSubmit())
	require.NoError(t, err)
	assert.Equal(t, domain.ContactNew, c.Status)
	assert.Equal(t, "visitor@example.com", c.Email)
	assert.Equal(t, "1.2.3.4", c.IPAddress)

	list, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
	n.AssertExpectations(t)
}

func TestSubmitValidates(t *testing.T) {
	n := new(mockNotifier)
	svc := NewContactService(repo.NewContactRepo(dbtest.NewDB(t)), n, zap.NewNop())

	in := validSubmit()
	in.Email = "nope"
	in.Message = strings.Repeat("x", 1001)
	_, err := svc.Submit(context.Background(), in)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, ve.Details, "email")
	assert.Contains(t, ve.Details, "message")
	n.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestSetStatusAndDelete(t *testing.T) {
	ctx := context.Background()
	n := new(mockNotifier)
	n.On("Notify", mock.Anything, mock.Anything).Return(NotifyResult{Status: NotifySent})
	svc := NewContactService(repo.NewContactRepo(dbtest.NewDB(t)), n, zap.NewNop())
	c, err := svc.Submit(ctx, validSubmit())
	require.NoError(t, err)

	for _, st := range []string{"archived", "new", "replied", "read"} {
		got, err := svc.SetStatus(ctx, c.ID, st)
		require.NoError(t, err)
		assert.Equal(t, domain.ContactStatus(st), got.Status)
	}

	_, err = svc.SetStatus(ctx, c.ID, "spam")
	assert.True(t, errors.Is(err, domain.ErrValidation))
	_, err = svc.List(ctx, "spam")
	assert.True(t, errors.Is(err, domain.ErrValidation))

	read, err := svc.List(ctx, "read")
	require.NoError(t, err)
	assert.Len(t, read, 1)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, c.ID), domain.ErrNotFound))
}

func TestMailNotifier(t *testing.T) {
	ctx := context.Background()
	c := &domain.Contact{Name: "V", Email: "v@example.com", Subject: "Hello", Message: "Hi"}

	reg := prometheus.NewRegistry()
	off := NewMailNotifier(&fakeMailer{}, "me@example.com", zap.NewNop(), reg)
	assert.Equal(t, NotifyNotConfigured, off.Notify(ctx, c).Status)
	assert.True(t, errors.Is(off.TestConfiguration(ctx), ErrMailNotConfigured))

	fm := &fakeMailer{configured: true}
	on := NewMailNotifier(fm, "me@example.com", zap.NewNop(), reg)
	assert.Equal(t, NotifySent, on.Notify(ctx, c).Status)
	require.Len(t, fm.sent, 1)
	assert.Equal(t, "v@example.com", fm.sent[0].ReplyTo)
	assert.Equal(t, "Portfolio Contact: Hello", fm.sent[0].Subject)
	require.NoError(t, on.TestConfiguration(ctx))

	broken := NewMailNotifier(&fakeMailer{configured: true, err: errors.New("auth failed")}, "me@example.com", zap.NewNop(), reg)
	res := broken.Notify(ctx, c)
	assert.Equal(t, NotifyFailed, res.Status)
	assert.Error(t, res.Err)
	assert.Error(t, broken.TestConfiguration(ctx))

	assert.Equal(t, 1.0, testutil.ToFloat64(on.sent.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(on.sent.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(on.sent.WithLabelValues("not_configured")))
}
