package helper_test

import (
	"testing"
	"time"

	"concert_hub/helper"
	"concert_hub/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUniqueEventSlug(t *testing.T) {
	db := setupTestDB(t)

	first := helper.GenerateUniqueEventSlug(db, "Đêm Nhạc Trịnh")
	assert.Equal(t, "dem-nhac-trinh", first)

	event := model.Event{
		Name:      "Đêm Nhạc Trịnh",
		Slug:      first,
		Venue:     "Nhà hát Lớn",
		StartTime: time.Now().Add(24 * time.Hour),
		EndTime:   time.Now().Add(27 * time.Hour),
	}
	require.NoError(t, db.Create(&event).Error)

	second := helper.GenerateUniqueEventSlug(db, "Đêm Nhạc Trịnh")
	assert.Equal(t, "dem-nhac-trinh-1", second)
}
