package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNickname(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		nickname string
		wantErr  bool
	}{
		{"Valid", "moon_writer", false},
		{"Valid Korean", "달빛작가", false},
		{"Valid Mixed", "luna.22", false},
		{"Too Short", "a", true},
		{"Too Long", "abcdefghijklmnopqrstu", true},
		{"Leading Dot", ".luna", true},
		{"Trailing Dot", "luna.", true},
		{"Whitespace", "moon writer", true},
		{"Reserved", "admin", true},
		{"Reserved Uppercase", "Admin", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNickname(tt.nickname)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateLoginID(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		loginID string
		wantErr bool
	}{
		{"Valid", "moon-writer_01", false},
		{"Too Short", "abc", true},
		{"Uppercase", "MoonWriter", true},
		{"Special Chars", "moon@writer", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLoginID(tt.loginID)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	type req struct {
		Title string `validate:"required,max=50"`
		Mood  int    `validate:"min=1,max=5"`
	}

	assert.NoError(t, ValidateStruct(req{Title: "morning walk", Mood: 3}))
	assert.Error(t, ValidateStruct(req{Title: "", Mood: 3}))
	assert.Error(t, ValidateStruct(req{Title: "x", Mood: 9}))
}
