package phrase

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func strptr(s string) *string { return &s }

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		want   Parsed
	}{
		{
			name:   "name, text and tag",
			phrase: "Рецепты. Описание приготовления блюд. #Еда",
			want:   Parsed{Name: "Рецепты", Text: strptr("Описание приготовления блюд."), Tags: []string{"Еда"}},
		},
		{
			name:   "multiple tags keep encounter order",
			phrase: "Рецепт макарон. Сварить макароны 15 минут. #Рецепты#Еда#Макароны",
			want:   Parsed{Name: "Рецепт макарон", Text: strptr("Сварить макароны 15 минут."), Tags: []string{"Рецепты", "Еда", "Макароны"}},
		},
		{
			name:   "only name",
			phrase: "Простая заметка",
			want:   Parsed{Name: "Простая заметка", Tags: []string{}},
		},
		{
			name:   "dot with nothing after yields empty text, not absent",
			phrase: "Заметка. #Тег1#Тег2",
			want:   Parsed{Name: "Заметка", Text: strptr(""), Tags: []string{"Тег1", "Тег2"}},
		},
		{
			name:   "name and text, no tags",
			phrase: "Название. Текст заметки",
			want:   Parsed{Name: "Название", Text: strptr("Текст заметки"), Tags: []string{}},
		},
		{
			name:   "only first dot delimits",
			phrase: "Название. Текст с точками... и еще текст.",
			want:   Parsed{Name: "Название", Text: strptr("Текст с точками... и еще текст."), Tags: []string{}},
		},
		{
			name:   "tags embedded mid-sentence are removed in place",
			phrase: "Shopping #errands list. Milk #dairy and bread",
			want:   Parsed{Name: "Shopping  list", Text: strptr("Milk  and bread"), Tags: []string{"errands", "dairy"}},
		},
		{
			name:   "duplicate tags are kept",
			phrase: "Note. Body #a#a",
			want:   Parsed{Name: "Note", Text: strptr("Body"), Tags: []string{"a", "a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.phrase)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.phrase, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.phrase, got, tt.want)
			}
		})
	}
}

func TestParse_NoDotLeavesTextUnset(t *testing.T) {
	got, err := Parse("Простая заметка")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got.Text != nil {
		t.Errorf("Text = %q, want unset", *got.Text)
	}
}

func TestParse_EmptyPhrase(t *testing.T) {
	for _, phrase := range []string{"", "   ", "\n\t"} {
		if _, err := Parse(phrase); !errors.Is(err, ErrEmptyPhrase) {
			t.Errorf("Parse(%q) error = %v, want ErrEmptyPhrase", phrase, err)
		}
	}
}

func TestParse_EmptyName(t *testing.T) {
	if _, err := Parse(". Только текст"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("error = %v, want ErrEmptyName", err)
	}
	// A phrase that is nothing but tags has no name either.
	if _, err := Parse("#один#два"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("error = %v, want ErrEmptyName", err)
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("Валидное название"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, name := range []string{"", "   "} {
		if err := ValidateName(name); !errors.Is(err, ErrEmptyName) {
			t.Errorf("ValidateName(%q) = %v, want ErrEmptyName", name, err)
		}
	}
}

func TestValidateName_LengthIsCodePoints(t *testing.T) {
	// Exactly 100 code points passes, 101 fails — even when the
	// runes are multi-byte.
	if err := ValidateName(strings.Repeat("я", 100)); err != nil {
		t.Errorf("100 code points rejected: %v", err)
	}
	if err := ValidateName(strings.Repeat("я", 101)); !errors.Is(err, ErrNameTooLong) {
		t.Errorf("101 code points: error = %v, want ErrNameTooLong", err)
	}
}
