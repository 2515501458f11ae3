package os

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ttlfinger/internal/core/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		token    model.TtlToken
		expected model.Classification
	}{
		{"128", model.OSWindows},
		{"64", model.OSLinux},
		{"64 ", model.OSLinux},
		{"640", model.OSLinux},
		{"64x", model.OSLinux},
		{"254", model.OSSolarisAIX},
		{"0.1", model.OSSuppressed},
		{"ets", model.OSSuppressed},
		{"", model.OSUncertain},
		{"6", model.OSUncertain},
		{"63", model.OSUncertain},
		{"127", model.OSUncertain},
		{"1280", model.OSUncertain},
		{"255", model.OSUncertain},
		{"ach", model.OSUncertain},
	}

	for _, tt := range tests {
		t.Run(string(tt.token), func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.token))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	for _, token := range []model.TtlToken{"128", "64", "254", "0.1", "", "zzz"} {
		first := Classify(token)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, Classify(token))
		}
	}
}

func TestClassification_Suppressed(t *testing.T) {
	assert.True(t, Classify("ets").Suppressed())
	assert.False(t, Classify("").Suppressed())
}
