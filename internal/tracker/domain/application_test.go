package domain

import "testing"

func TestPromote(t *testing.T) {
	tests := []struct {
		name     string
		prev     Status
		incoming Status
		want     Status
	}{
		{name: "no previous takes incoming", prev: "", incoming: StatusInterview, want: StatusInterview},
		{name: "no previous and no incoming defaults to Applied", prev: "", incoming: "", want: StatusApplied},
		{name: "no incoming keeps previous", prev: StatusOffer, incoming: "", want: StatusOffer},
		{name: "forward move wins", prev: StatusApplied, incoming: StatusInterview, want: StatusInterview},
		{name: "equal weight takes incoming", prev: StatusInterview, incoming: StatusInterview, want: StatusInterview},
		{name: "rejected is not demoted by applied", prev: StatusRejected, incoming: StatusApplied, want: StatusRejected},
		{name: "rejected outranks offer", prev: StatusRejected, incoming: StatusOffer, want: StatusRejected},
		{name: "withdrawn outranks everything", prev: StatusWithdrawn, incoming: StatusRejected, want: StatusWithdrawn},
		{name: "offer over phone screen", prev: StatusPhoneScreen, incoming: StatusOffer, want: StatusOffer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Promote(tt.prev, tt.incoming); got != tt.want {
				t.Errorf("Promote(%q, %q) = %q, want %q", tt.prev, tt.incoming, got, tt.want)
			}
		})
	}
}

func TestPromoteIsMonotonic(t *testing.T) {
	sequences := [][]Status{
		{StatusApplied, StatusInterview, StatusRejected, StatusApplied},
		{StatusInterview, StatusApplied, StatusPhoneScreen},
		{StatusOffer, StatusRejected, StatusOffer},
	}

	for _, seq := range sequences {
		var current Status
		prevWeight := 0
		for _, incoming := range seq {
			current = Promote(current, incoming)
			if current.Weight() < prevWeight {
				t.Fatalf("weight regressed to %d after %q in sequence %v", current.Weight(), incoming, seq)
			}
			prevWeight = current.Weight()
		}
	}
}

func TestStatusValid(t *testing.T) {
	if !StatusPhoneScreen.Valid() {
		t.Error("Phone Screen should be a valid status")
	}
	if Status("Ghosted").Valid() {
		t.Error("unknown status should not be valid")
	}
}
