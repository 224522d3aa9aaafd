//go:build unit

package queries_test

import (
	"context"
	"errors"
	"testing"

	"icms/internal/infra"
	"icms/internal/pkg/errs"
	"icms/internal/usecase/queries"
	"icms/tests/common/builder"
	queriesmock "icms/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestTransactionQueries_GetByReference(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockTransactionReadStore(ctrl)
		view := builder.NewTransactionBuilder().WithBalance("600").BuildView()
		store.EXPECT().FindByReference(ctx, "REF-001").Return(view, nil)

		got, err := queries.NewTransactionQueries(store).GetByReference(ctx, "REF-001")

		require.NoError(t, err)
		if diff := cmp.Diff(view, got); diff != "" {
			t.Errorf("view mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockTransactionReadStore(ctrl)
		store.EXPECT().FindByReference(ctx, "REF-404").
			Return(nil, infra.WrapRepoErr("transaction not found", pgx.ErrNoRows, infra.KindNotFound))

		_, err := queries.NewTransactionQueries(store).GetByReference(ctx, "REF-404")

		assert.True(t, errs.Is(err, queries.ErrTransactionNotFound))
	})

	t.Run("other failures pass through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockTransactionReadStore(ctrl)
		store.EXPECT().FindByReference(ctx, "REF-001").Return(nil, errors.New("timeout"))

		_, err := queries.NewTransactionQueries(store).GetByReference(ctx, "REF-001")

		require.Error(t, err)
		assert.False(t, errs.Is(err, queries.ErrTransactionNotFound))
	})
}

func TestRequestQueries_GetClientContact(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockRequestReadStore(ctrl)
		contact := builder.NewSampleBuilder().BuildClientContact()
		store.EXPECT().FindClientContact(ctx, "REF-001").Return(contact, nil)

		got, err := queries.NewRequestQueries(store).GetClientContact(ctx, "REF-001")

		require.NoError(t, err)
		assert.Equal(t, contact, got)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		store := queriesmock.NewMockRequestReadStore(ctrl)
		store.EXPECT().FindClientContact(ctx, "REF-404").
			Return(nil, infra.WrapRepoErr("request not found", pgx.ErrNoRows, infra.KindNotFound))

		_, err := queries.NewRequestQueries(store).GetClientContact(ctx, "REF-404")

		assert.True(t, errs.Is(err, queries.ErrRequestNotFound))
	})
}
