package service

import "testing"

func TestParseAssignee(t *testing.T) {
	tests := []struct {
		raw  string
		want AssigneeToken
	}{
		{"<@123456789>", AssigneeToken{MentionID: "123456789"}},
		{"<@!42>", AssigneeToken{MentionID: "42"}},
		{"  <@7> ", AssigneeToken{MentionID: "7"}},
		{"alice", AssigneeToken{Handle: "alice"}},
		{" alice ", AssigneeToken{Handle: "alice"}},
		{"<@abc>", AssigneeToken{Handle: "<@abc>"}},
		{"<#123>", AssigneeToken{Handle: "<#123>"}},
		{"<@&123>", AssigneeToken{Handle: "<@&123>"}},
		{"", AssigneeToken{}},
	}
	for _, tt := range tests {
		got := ParseAssignee(tt.raw)
		if got != tt.want {
			t.Errorf("ParseAssignee(%q) = %+v, want %+v", tt.raw, got, tt.want)
		}
		if got.IsMention() != (tt.want.MentionID != "") {
			t.Errorf("IsMention(%q) mismatch", tt.raw)
		}
	}
}
