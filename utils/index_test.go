package utils_test

import (
	"testing"

	"concert_hub/utils"

	"github.com/stretchr/testify/assert"
)

func TestCalculateGrowth(t *testing.T) {
	assert.Equal(t, float64(50), utils.CalculateGrowth(150, 100))
	assert.Equal(t, float64(-50), utils.CalculateGrowth(50, 100))
	assert.Equal(t, float64(0), utils.CalculateGrowth(0, 0))
	assert.Equal(t, float64(100), utils.CalculateGrowth(10, 0), "hôm qua bằng 0 thì coi như tăng 100%%")
}

func TestGetFirstValue(t *testing.T) {
	values := map[string][]string{
		"orderCode": {"12345", "67890"},
		"empty":     {},
	}
	assert.Equal(t, "12345", utils.GetFirstValue(values, "orderCode"))
	assert.Equal(t, "", utils.GetFirstValue(values, "empty"))
	assert.Equal(t, "", utils.GetFirstValue(values, "missing"))
}

func TestGenerateQRCode(t *testing.T) {
	png, err := utils.GenerateQRCode("TKT-abc123", 256)
	assert.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG signature
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, png[:4])
}
