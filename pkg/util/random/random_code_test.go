package random

import (
	"strings"
	"testing"

	"github.com/clickmediapropy/traductor-app/pkg/constants"
)

func TestGenerateSessionCode(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		code := GenerateSessionCode()
		if len(code) != constants.CODE_LENGTH {
			t.Fatalf("code length = %d, want %d", len(code), constants.CODE_LENGTH)
		}
		for _, c := range code {
			if !strings.ContainsRune(constants.CODE_ALPHABET, c) {
				t.Fatalf("code %q contains %q outside the alphabet", code, c)
			}
		}
		seen[code] = true
	}
	// 200 次生成全部相同的概率可以忽略
	if len(seen) < 2 {
		t.Error("generator returned the same code every time")
	}
}

func TestAlphabetExcludesAmbiguous(t *testing.T) {
	for _, c := range "0O1Il" {
		if strings.ContainsRune(constants.CODE_ALPHABET, c) {
			t.Errorf("alphabet contains ambiguous character %q", c)
		}
	}
}
