package chat

import "testing"

func TestConversation_AppendPreservesOrder(t *testing.T) {
	conv := NewConversation()

	conv.Append(RoleUser, "first")
	conv.Append(RoleAssistant, "second")
	conv.Append(RoleUser, "third")

	all := conv.All()
	if len(all) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(all))
	}
	for i, want := range []string{"first", "second", "third"} {
		if all[i].Content != want {
			t.Errorf("Message %d: expected %q, got %q", i, want, all[i].Content)
		}
	}
	if all[0].Role != RoleUser || all[1].Role != RoleAssistant {
		t.Errorf("Roles not preserved: %v, %v", all[0].Role, all[1].Role)
	}
}

func TestConversation_UniqueIDs(t *testing.T) {
	conv := NewConversation()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		msg := conv.Append(RoleUser, "hello")
		if msg.ID == "" {
			t.Fatal("Message ID must not be empty")
		}
		if seen[msg.ID] {
			t.Fatalf("Duplicate message ID: %s", msg.ID)
		}
		seen[msg.ID] = true
	}
}

func TestConversation_AllReturnsCopy(t *testing.T) {
	conv := NewConversation()
	conv.Append(RoleUser, "original")

	all := conv.All()
	all[0].Content = "tampered"

	if conv.All()[0].Content != "original" {
		t.Error("Mutating the returned slice must not affect the store")
	}
}

func TestConversation_Reset(t *testing.T) {
	conv := NewConversation()
	conv.Append(RoleUser, "hello")
	conv.Reset()

	if conv.Len() != 0 {
		t.Errorf("Expected empty conversation after reset, got %d messages", conv.Len())
	}
}
