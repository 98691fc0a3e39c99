package bottle

import (
	"context"
	"testing"
	"time"

	"github.com/ougirez/cellarium/internal/domain"
	"github.com/ougirez/cellarium/internal/domain/dto"
	"github.com/ougirez/cellarium/internal/pkg/constants"
	"github.com/ougirez/cellarium/internal/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBottles mimics the COALESCE semantics of the SQL consume query.
type fakeBottles struct {
	store.BottleStore
	bottles map[int64]*domain.Bottle
	today   domain.Date
}

func (f *fakeBottles) ConsumeBottle(_ context.Context, id int64) (*domain.Bottle, error) {
	b, ok := f.bottles[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	if b.ConsumedAt == nil {
		day := f.today
		b.ConsumedAt = &day
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBottles) UndoConsumeBottle(_ context.Context, id int64) (*domain.Bottle, error) {
	b, ok := f.bottles[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	b.ConsumedAt = nil
	cp := *b
	return &cp, nil
}

func (f *fakeBottles) CreateBottle(_ context.Context, in dto.BottleInput) (*domain.Bottle, error) {
	b := &domain.Bottle{ID: int64(len(f.bottles) + 1), WineID: in.WineID}
	f.bottles[b.ID] = b
	return b, nil
}

func TestConsumeKeepsFirstDate(t *testing.T) {
	fake := &fakeBottles{
		bottles: make(map[int64]*domain.Bottle),
		today:   domain.NewDate(time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC)),
	}
	svc := NewBottleService(fake)
	ctx := context.Background()

	b, err := svc.CreateBottle(ctx, dto.BottleInput{WineID: 1})
	require.NoError(t, err)

	first, err := svc.Consume(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, first.ConsumedAt)
	assert.Equal(t, "2024-03-01", first.ConsumedAt.String())

	fake.today = domain.NewDate(time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	second, err := svc.Consume(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", second.ConsumedAt.String())

	undone, err := svc.UndoConsume(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, undone.ConsumedAt)
	assert.True(t, undone.InStock())

	again, err := svc.UndoConsume(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, again.ConsumedAt)
}

func TestConsumeUnknownBottle(t *testing.T) {
	svc := NewBottleService(&fakeBottles{bottles: make(map[int64]*domain.Bottle)})

	_, err := svc.Consume(context.Background(), 404)
	assert.ErrorIs(t, err, constants.ErrDBNotFound)

	_, err = svc.UndoConsume(context.Background(), 404)
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
}
