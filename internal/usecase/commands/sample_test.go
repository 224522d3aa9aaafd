//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"icms/internal/domain/sample"
	"icms/internal/infra"
	"icms/internal/pkg/clock"
	"icms/internal/pkg/errs"
	"icms/internal/usecase/commands"
	"icms/internal/usecase/shared"
	"icms/tests/common/builder"
	commandsmock "icms/tests/mock/commands"
	queriesmock "icms/tests/mock/queries"
	sharedmock "icms/tests/mock/shared"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type sampleFixture struct {
	uow        *sharedmock.MockUnitOfWork
	tx         *sharedmock.MockTx
	samples    *sharedmock.MockSampleRepository
	requests   *sharedmock.MockRequestRepository
	contacts   *queriesmock.MockRequestQueries
	notifier   *commandsmock.MockNotifier
	dispatcher *commandsmock.MockDispatcher
	clock      *clock.MockClock
	uc         commands.SampleCommands

	// task captured from the dispatcher
	task func(ctx context.Context) error
}

func newSampleFixture(t *testing.T) *sampleFixture {
	ctrl := gomock.NewController(t)
	f := &sampleFixture{
		uow:        sharedmock.NewMockUnitOfWork(ctrl),
		tx:         sharedmock.NewMockTx(ctrl),
		samples:    sharedmock.NewMockSampleRepository(ctrl),
		requests:   sharedmock.NewMockRequestRepository(ctrl),
		contacts:   queriesmock.NewMockRequestQueries(ctrl),
		notifier:   commandsmock.NewMockNotifier(ctrl),
		dispatcher: commandsmock.NewMockDispatcher(ctrl),
		clock:      clock.NewMockClock(time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)),
	}
	f.uc = commands.NewSampleCommands(f.uow, f.contacts, f.notifier, f.dispatcher, f.clock)

	f.tx.EXPECT().DB().Return(nil).AnyTimes()
	f.tx.EXPECT().Samples().Return(f.samples).AnyTimes()
	f.tx.EXPECT().Requests().Return(f.requests).AnyTimes()
	return f
}

func (f *sampleFixture) expectTransactions(n int) {
	f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, f.tx)
		}).Times(n)
}

func (f *sampleFixture) captureDispatch() {
	f.dispatcher.EXPECT().Submit("notify.request_completed", gomock.Any()).
		DoAndReturn(func(_ string, task func(context.Context) error) bool {
			f.task = task
			return true
		})
}

func TestSampleCommands_UpdateStatus_Validation(t *testing.T) {
	cases := []struct {
		name     string
		sampleID int64
		status   string
	}{
		{name: "unknown status", sampleID: 1, status: "done"},
		{name: "empty status", sampleID: 1, status: ""},
		{name: "non-positive id", sampleID: 0, status: "completed"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newSampleFixture(t)

			res, err := f.uc.UpdateStatus(context.Background(), tc.sampleID, tc.status)

			assert.Nil(t, res)
			assert.True(t, errs.Is(err, commands.ErrValidation))
		})
	}
}

func TestSampleCommands_UpdateStatus_Errors(t *testing.T) {
	t.Run("missing sample", func(t *testing.T) {
		f := newSampleFixture(t)
		f.expectTransactions(1)
		f.samples.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), int64(99), sample.StatusCompleted).
			Return(nil, infra.WrapRepoErr("sample not found", pgx.ErrNoRows, infra.KindNotFound))

		_, err := f.uc.UpdateStatus(context.Background(), 99, "completed")

		assert.True(t, errs.Is(err, commands.ErrSampleNotFound))
	})

	t.Run("database failure", func(t *testing.T) {
		f := newSampleFixture(t)
		f.expectTransactions(1)
		f.samples.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), int64(1), sample.StatusInProgress).
			Return(nil, infra.WrapRepoErr("failed to update sample status", errors.New("conn reset")))

		_, err := f.uc.UpdateStatus(context.Background(), 1, "in_progress")

		assert.True(t, errs.Is(err, commands.ErrDatabaseOperationFailed))
		assert.False(t, errs.Is(err, commands.ErrSampleNotFound))
	})
}

func TestSampleCommands_UpdateStatus_NoCascade(t *testing.T) {
	t.Run("status other than completed", func(t *testing.T) {
		f := newSampleFixture(t)
		f.expectTransactions(1)
		s := builder.NewSampleBuilder().WithStatus(sample.StatusInProgress).BuildDomain()
		f.samples.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), s.ID(), sample.StatusInProgress).Return(s, nil)

		res, err := f.uc.UpdateStatus(context.Background(), s.ID(), "in_progress")

		require.NoError(t, err)
		assert.Equal(t, commands.SampleStatusUpdatedMessage, res.Message)
		assert.False(t, res.RequestCompleted)
	})

	t.Run("completed sample without reservation", func(t *testing.T) {
		f := newSampleFixture(t)
		f.expectTransactions(1)
		s := builder.NewSampleBuilder().WithoutReference().BuildDomain()
		f.samples.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), s.ID(), sample.StatusCompleted).Return(s, nil)

		res, err := f.uc.UpdateStatus(context.Background(), s.ID(), "completed")

		require.NoError(t, err)
		assert.False(t, res.RequestCompleted)
	})

	t.Run("siblings still incomplete", func(t *testing.T) {
		f := newSampleFixture(t)
		f.expectTransactions(2)
		s := builder.NewSampleBuilder().BuildDomain()
		f.samples.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), s.ID(), sample.StatusCompleted).Return(s, nil)
		f.requests.EXPECT().LockByReference(gomock.Any(), gomock.Any(), "REF-001").
			Return(&shared.RequestSnapshot{ReferenceNumber: "REF-001", Status: "in_progress"}, nil)
		f.samples.EXPECT().CountIncomplete(gomock.Any(), gomock.Any(), "REF-001").Return(int64(1), nil)

		res, err := f.uc.UpdateStatus(context.Background(), s.ID(), "completed")

		require.NoError(t, err)
		assert.False(t, res.RequestCompleted)
	})

	t.Run("request already completed", func(t *testing.T) {
		f := newSampleFixture(t)
		f.expectTransactions(2)
		s := builder.NewSampleBuilder().BuildDomain()
		f.samples.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), s.ID(), sample.StatusCompleted).Return(s, nil)
		f.requests.EXPECT().LockByReference(gomock.Any(), gomock.Any(), "REF-001").
			Return(&shared.RequestSnapshot{ReferenceNumber: "REF-001", Status: "completed"}, nil)

		res, err := f.uc.UpdateStatus(context.Background(), s.ID(), "completed")

		require.NoError(t, err)
		assert.False(t, res.RequestCompleted)
	})

	t.Run("cascade failure is swallowed", func(t *testing.T) {
		f := newSampleFixture(t)
		f.expectTransactions(1)
		s := builder.NewSampleBuilder().BuildDomain()
		f.samples.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), s.ID(), sample.StatusCompleted).Return(s, nil)
		f.uow.EXPECT().Within(gomock.Any(), gomock.Any()).Return(errors.New("deadlock detected"))

		res, err := f.uc.UpdateStatus(context.Background(), s.ID(), "completed")

		require.NoError(t, err)
		assert.Equal(t, commands.SampleStatusUpdatedMessage, res.Message)
		assert.False(t, res.RequestCompleted)
	})
}

func TestSampleCommands_UpdateStatus_CompletesRequest(t *testing.T) {
	ctx := context.Background()

	arrange := func(t *testing.T, b *builder.SampleBuilder) *sampleFixture {
		f := newSampleFixture(t)
		f.expectTransactions(2)
		s := b.BuildDomain()
		f.samples.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), s.ID(), sample.StatusCompleted).Return(s, nil)
		f.requests.EXPECT().LockByReference(gomock.Any(), gomock.Any(), "REF-001").
			Return(&shared.RequestSnapshot{ReferenceNumber: "REF-001", Status: "in_progress"}, nil)
		f.samples.EXPECT().CountIncomplete(gomock.Any(), gomock.Any(), "REF-001").Return(int64(0), nil)
		f.requests.EXPECT().Complete(gomock.Any(), gomock.Any(), "REF-001", f.clock.Now()).Return(true, nil)
		f.captureDispatch()

		res, err := f.uc.UpdateStatus(ctx, s.ID(), " Completed ")
		require.NoError(t, err)
		assert.True(t, res.RequestCompleted)
		require.NotNil(t, f.task)
		return f
	}

	t.Run("notifies the client", func(t *testing.T) {
		b := builder.NewSampleBuilder()
		f := arrange(t, b)
		f.notifier.EXPECT().Enabled().Return(true)
		f.contacts.EXPECT().GetClientContact(gomock.Any(), "REF-001").Return(b.BuildClientContact(), nil)
		f.notifier.EXPECT().SendCompletion(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, n commands.CompletionNotice) error {
				assert.Equal(t, "lab-client@example.com", n.Email)
				assert.Equal(t, "Acme Metrology", n.Name)
				assert.Equal(t, "REF-001", n.ReferenceNumber)
				assert.Equal(t, f.clock.Now(), n.CompletedAt)
				return nil
			})

		assert.NoError(t, f.task(ctx))
	})

	t.Run("notifications disabled", func(t *testing.T) {
		f := arrange(t, builder.NewSampleBuilder())
		f.notifier.EXPECT().Enabled().Return(false)

		assert.NoError(t, f.task(ctx))
	})

	t.Run("client without email", func(t *testing.T) {
		blank := "  "
		for _, email := range []*string{nil, &blank} {
			b := builder.NewSampleBuilder().WithClientEmail(email)
			f := arrange(t, b)
			f.notifier.EXPECT().Enabled().Return(true)
			f.contacts.EXPECT().GetClientContact(gomock.Any(), "REF-001").Return(b.BuildClientContact(), nil)

			assert.NoError(t, f.task(ctx))
		}
	})

	t.Run("client with malformed email", func(t *testing.T) {
		bad := "not-an-email"
		b := builder.NewSampleBuilder().WithClientEmail(&bad)
		f := arrange(t, b)
		f.notifier.EXPECT().Enabled().Return(true)
		f.contacts.EXPECT().GetClientContact(gomock.Any(), "REF-001").Return(b.BuildClientContact(), nil)

		assert.NoError(t, f.task(ctx))
	})

	t.Run("publish failure surfaces to the dispatcher", func(t *testing.T) {
		b := builder.NewSampleBuilder()
		f := arrange(t, b)
		f.notifier.EXPECT().Enabled().Return(true)
		f.contacts.EXPECT().GetClientContact(gomock.Any(), "REF-001").Return(b.BuildClientContact(), nil)
		f.notifier.EXPECT().SendCompletion(gomock.Any(), gomock.Any()).Return(errors.New("broker unreachable"))

		assert.Error(t, f.task(ctx))
	})
}

func TestSampleCommands_UpdateStatus_SecondCompletionDoesNotNotify(t *testing.T) {
	f := newSampleFixture(t)
	f.expectTransactions(2)
	s := builder.NewSampleBuilder().BuildDomain()
	f.samples.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), s.ID(), sample.StatusCompleted).Return(s, nil)
	f.requests.EXPECT().LockByReference(gomock.Any(), gomock.Any(), "REF-001").
		Return(&shared.RequestSnapshot{ReferenceNumber: "REF-001", Status: "in_progress"}, nil)
	f.samples.EXPECT().CountIncomplete(gomock.Any(), gomock.Any(), "REF-001").Return(int64(0), nil)
	// a concurrent caller flipped it first
	f.requests.EXPECT().Complete(gomock.Any(), gomock.Any(), "REF-001", gomock.Any()).Return(false, nil)

	res, err := f.uc.UpdateStatus(context.Background(), s.ID(), "completed")

	require.NoError(t, err)
	assert.False(t, res.RequestCompleted)
}
