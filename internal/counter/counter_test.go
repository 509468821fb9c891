package counter

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanOrder(t *testing.T) {
	plan := Request{
		DecrementFavoriteCount: true,
		IncrementViewCount:     true,
		DecrementViewCount:     true,
		IncrementInquiryCount:  true,
	}.Plan()

	assert.Equal(t, []Adjustment{
		{Kind: View, Delta: 1},
		{Kind: View, Delta: -1},
		{Kind: Inquiry, Delta: 1},
		{Kind: Favorite, Delta: -1},
	}, plan)
	assert.Empty(t, Request{}.Plan())
}

func TestIncrementThenDecrementFromZero(t *testing.T) {
	got := Counts{}.Apply(Request{IncrementViewCount: true, DecrementViewCount: true}.Plan())
	assert.Equal(t, int64(0), got.Views)
}

func TestDecrementFloorsAtZero(t *testing.T) {
	c := Counts{Views: 0, Inquiries: 2}
	c = c.Apply(Request{DecrementViewCount: true, DecrementInquiryCount: true}.Plan())
	assert.Equal(t, Counts{Views: 0, Inquiries: 1}, c)
}

func TestCountersNeverNegative(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	kinds := []Kind{View, Inquiry, Favorite}
	c := Counts{}
	for i := 0; i < 1000; i++ {
		delta := -1
		if rng.Intn(3) == 0 {
			delta = 1
		}
		c = c.Apply([]Adjustment{{Kind: kinds[rng.Intn(3)], Delta: delta}})
		if c.Views < 0 || c.Inquiries < 0 || c.Favorites < 0 {
			t.Fatalf("step %d: negative counter %+v", i, c)
		}
	}
}

func TestColumns(t *testing.T) {
	assert.Equal(t, "view_count", View.Column())
	assert.Equal(t, "inquiry_count", Inquiry.Column())
	assert.Equal(t, "favorite_count", Favorite.Column())
	assert.Equal(t, []Adjustment{{Kind: View, Delta: 1}}, ViewOnce())
}
