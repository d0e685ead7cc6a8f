package parser

import (
	"testing"

	"github.com/clickmediapropy/traductor-app/internal/model"
)

func TestSegmentBasicConversation(t *testing.T) {
	raw := "教授: 今天市场行情很好\n30(女): 我同意这个看法\n还会继续涨\n32: 好的"

	messages := Segment(raw)
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d: %+v", len(messages), messages)
	}

	if messages[0].Type != model.PersonaProfessor {
		t.Errorf("message 1 persona = %q, want professor", messages[0].Type)
	}
	if messages[0].ID != 1 {
		t.Errorf("message 1 id = %d, want 1", messages[0].ID)
	}

	if messages[1].Type != model.PersonaClient {
		t.Errorf("message 2 persona = %q, want client", messages[1].Type)
	}
	if messages[1].ClientNumber != 30 {
		t.Errorf("message 2 client number = %d, want 30", messages[1].ClientNumber)
	}
	if messages[1].Gender != model.GenderFemale {
		t.Errorf("message 2 gender = %q, want female", messages[1].Gender)
	}
	// 续行拼接到所属消息
	if messages[1].Original != "30(女): 我同意这个看法\n还会继续涨" {
		t.Errorf("continuation not joined: %q", messages[1].Original)
	}

	if messages[2].ClientNumber != 32 {
		t.Errorf("message 3 client number = %d, want 32", messages[2].ClientNumber)
	}
	if messages[2].Gender != model.GenderMale {
		t.Errorf("client without marker must default to male, got %q", messages[2].Gender)
	}
	if messages[2].ID != 3 {
		t.Errorf("message 3 id = %d, want 3", messages[2].ID)
	}
}

func TestSegmentStripsMetadataLines(t *testing.T) {
	raw := "blues 周伯通工作室, [10 de oct de 2025 a las 15:02]\n教授: 大家好\nblues 周伯通工作室, [10 de oct de 2025 a las 15:03]\n31: 老师好"

	messages := Segment(raw)
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d: %+v", len(messages), messages)
	}
	for _, m := range messages {
		if metadataLineRe.MatchString(m.Original) {
			t.Errorf("metadata leaked into message: %q", m.Original)
		}
	}
}

func TestSegmentOrphanLinesDropped(t *testing.T) {
	// 起始行出现之前的内容无从归属，直接丢弃
	raw := "无人认领的一行\n教授: 正式开始"

	messages := Segment(raw)
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if messages[0].Original != "教授: 正式开始" {
		t.Errorf("orphan line leaked: %q", messages[0].Original)
	}
}

func TestSegmentAssistantAndEnglishMarkers(t *testing.T) {
	raw := "Professor: good morning\n助理: 请大家注意\nAssistant: reminder"

	messages := Segment(raw)
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	if messages[0].Type != model.PersonaProfessor {
		t.Errorf("english professor marker not recognized: %q", messages[0].Type)
	}
	if messages[1].Type != model.PersonaAssistant || messages[2].Type != model.PersonaAssistant {
		t.Errorf("assistant markers not recognized: %q %q", messages[1].Type, messages[2].Type)
	}
}

func TestSegmentFullWidthPunctuation(t *testing.T) {
	raw := "33（女）： 你好\n教授： 你好"

	messages := Segment(raw)
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].ClientNumber != 33 || messages[0].Gender != model.GenderFemale {
		t.Errorf("full-width client marker: number=%d gender=%q", messages[0].ClientNumber, messages[0].Gender)
	}
	if messages[1].Type != model.PersonaProfessor {
		t.Errorf("full-width professor colon not recognized: %q", messages[1].Type)
	}
}

func TestSegmentEmptyInput(t *testing.T) {
	if got := Segment(""); got != nil {
		t.Errorf("empty input: %+v", got)
	}
	if got := Segment("   \n  \n"); got != nil {
		t.Errorf("whitespace input: %+v", got)
	}
}

func TestCleanOriginalText(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		persona      model.Persona
		clientNumber int
		want         string
	}{
		{"professor", "教授: 今天行情不错", model.PersonaProfessor, 0, "今天行情不错"},
		{"professor english", "Professor: hello", model.PersonaProfessor, 0, "hello"},
		{"assistant", "助理: 请注意", model.PersonaAssistant, 0, "请注意"},
		{"client plain", "32: 好的", model.PersonaClient, 32, "好的"},
		{"client female", "30(女): 我同意", model.PersonaClient, 30, "我同意"},
		{"client full width", "30（女）：我同意", model.PersonaClient, 30, "我同意"},
		// 正文含其他客户编号时不能误删
		{"client other number", "30: 我和31: 一起", model.PersonaClient, 30, "我和31: 一起"},
		// 仅处理首行，续行原样保留
		{"multiline", "教授: 第一行\n第二行", model.PersonaProfessor, 0, "第一行\n第二行"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanOriginalText(tt.text, tt.persona, tt.clientNumber)
			if got != tt.want {
				t.Errorf("CleanOriginalText(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCleanOriginalTextIdempotent(t *testing.T) {
	once := CleanOriginalText("教授: 行情不错", model.PersonaProfessor, 0)
	twice := CleanOriginalText(once, model.PersonaProfessor, 0)
	if once != twice {
		t.Errorf("cleaning not idempotent: %q then %q", once, twice)
	}
}

func TestCleanAll(t *testing.T) {
	messages := Segment("教授: 大家好\n30(女): 老师好")
	cleaned := CleanAll(messages)

	if len(cleaned) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(cleaned))
	}
	if cleaned[0].OriginalWithFormat != "教授: 大家好" {
		t.Errorf("formatted original lost: %q", cleaned[0].OriginalWithFormat)
	}
	if cleaned[0].Original != "大家好" {
		t.Errorf("prefix not stripped: %q", cleaned[0].Original)
	}
	if cleaned[1].Original != "老师好" {
		t.Errorf("client prefix not stripped: %q", cleaned[1].Original)
	}
	// 原切片不受影响
	if messages[0].OriginalWithFormat != "" {
		t.Errorf("input slice mutated: %+v", messages[0])
	}
}
