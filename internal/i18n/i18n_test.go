package i18n

import "testing"

func TestDefaultLanguageIsArabic(t *testing.T) {
	tr := New("")
	if tr.Lang() != LangArabic {
		t.Fatalf("Lang = %q, want ar", tr.Lang())
	}
	if got := tr.T("status.active"); got != "نشطة" {
		t.Errorf("T(status.active) = %q", got)
	}
}

func TestSwitchLanguage(t *testing.T) {
	tr := New(LangArabic)
	tr.SetLanguage(LangEnglish)
	if got := tr.T("status.active"); got != "Active" {
		t.Errorf("T(status.active) = %q, want Active", got)
	}
}

func TestUnknownLanguageIgnored(t *testing.T) {
	tr := New(LangEnglish)
	tr.SetLanguage("fr")
	if tr.Lang() != LangEnglish {
		t.Errorf("unknown code switched language to %q", tr.Lang())
	}
}

func TestMissingKeyFallsBackToKey(t *testing.T) {
	tr := New(LangEnglish)
	if got := tr.T("no.such.key"); got != "no.such.key" {
		t.Errorf("T = %q, want the key itself", got)
	}
}

func TestEveryArabicKeyHasEnglish(t *testing.T) {
	for key := range tables[LangArabic] {
		if _, ok := tables[LangEnglish][key]; !ok {
			t.Errorf("key %q missing from the English table", key)
		}
	}
	for key := range tables[LangEnglish] {
		if _, ok := tables[LangArabic][key]; !ok {
			t.Errorf("key %q missing from the Arabic table", key)
		}
	}
}
