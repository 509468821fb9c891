package database_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/counter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/database/dbtest"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
)

func TestAdjustCountersConcurrentWritersKeepEveryCount(t *testing.T) {
	ctx := context.Background()
	db := dbtest.NewFileDB(t)

	p := &models.Property{
		ID:      uuid.NewString(),
		OwnerID: "owner",
		Name:    "Contended",
		Type:    models.PropertyTypeApartment,
		Status:  models.PropertyStatusPublished,
		Address: models.Address{StreetAddress: "1 Main St", City: "Austin", State: "TX", ZipCode: "78701"},
	}
	require.NoError(t, db.CreateProperty(ctx, p))

	const writers = 8
	const perWriter = 25

	var wg sync.WaitGroup
	errs := make(chan error, writers*perWriter)
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				plan := counter.Request{IncrementViewCount: true, IncrementFavoriteCount: true}.Plan()
				if err := db.AdjustCounters(ctx, p.ID, plan); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := db.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.EqualValues(t, writers*perWriter, got.ViewCount)
	assert.EqualValues(t, writers*perWriter, got.FavoriteCount)
	assert.EqualValues(t, 0, got.InquiryCount)
}
