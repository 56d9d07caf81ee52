package registry

import (
	"context"
	"testing"

	"github.com/ashdown-labs/larkhub-core/internal/adapter/fake"
	"github.com/ashdown-labs/larkhub-core/internal/channel"
	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

// fixture builds two services with a spread of channels and tags:
//
//	kitchen: temperature getter (tag zone:cooking), light setter
//	bedroom: temperature getter, humidity getter
func selectorFixture(t *testing.T) (reg *Registry, kitchen, bedroom *Service,
	kitchenTemp, kitchenLight, bedroomTemp, bedroomHumidity string) {
	t.Helper()
	reg = newTestRegistry(t)
	ctx := context.Background()

	kitchen = registeredService(t, reg, "Kitchen Hub", "floor:ground")
	bedroom = registeredService(t, reg, "Bedroom Hub", "floor:first")

	kt, _ := tempGetterChannel(t, "kitchen temperature")
	addChannel(t, kitchen, kt)
	kitchenTemp = kt.ID()

	kl, _ := lightSetterChannel(t, "kitchen light")
	addChannel(t, kitchen, kl)
	kitchenLight = kl.ID()

	bt, _ := tempGetterChannel(t, "bedroom temperature")
	addChannel(t, bedroom, bt)
	bedroomTemp = bt.ID()

	hg, err := channel.NewGetter(taxonomy.KindHumidity, nil, 0)
	if err != nil {
		t.Fatalf("NewGetter: %v", err)
	}
	bh, err := channel.NewGetterChannel("", "bedroom humidity", taxonomy.KindHumidity, hg, fake.New())
	if err != nil {
		t.Fatalf("NewGetterChannel: %v", err)
	}
	addChannel(t, bedroom, bh)
	bedroomHumidity = bh.ID()

	if _, err := reg.AddTags(ctx, NewSelector().WithID(kitchenTemp), "zone:cooking"); err != nil {
		t.Fatalf("AddTags: %v", err)
	}
	return reg, kitchen, bedroom, kitchenTemp, kitchenLight, bedroomTemp, bedroomHumidity
}

func ids(handles []Handle) []string {
	out := make([]string, 0, len(handles))
	for _, h := range handles {
		out = append(out, h.ChannelID)
	}
	return out
}

func containsID(handles []Handle, id string) bool {
	for _, h := range handles {
		if h.ChannelID == id {
			return true
		}
	}
	return false
}

func TestSelector_Matching(t *testing.T) {
	reg, kitchen, _, kitchenTemp, kitchenLight, bedroomTemp, bedroomHumidity := selectorFixture(t)

	tests := []struct {
		name string
		sel  Selector
		want []string
	}{
		{
			name: "empty selector matches all",
			sel:  NewSelector(),
			want: []string{kitchenTemp, kitchenLight, bedroomTemp, bedroomHumidity},
		},
		{
			name: "by kind",
			sel:  NewSelector().WithKind(taxonomy.KindTemperature),
			want: []string{kitchenTemp, bedroomTemp},
		},
		{
			name: "by role",
			sel:  NewSelector().WithRole(channel.RoleSetter),
			want: []string{kitchenLight},
		},
		{
			name: "by service",
			sel:  NewSelector().WithService(kitchen.ID()),
			want: []string{kitchenTemp, kitchenLight},
		},
		{
			name: "by channel id",
			sel:  NewSelector().WithID(bedroomHumidity),
			want: []string{bedroomHumidity},
		},
		{
			name: "by channel tag",
			sel:  NewSelector().WithTags("zone:cooking"),
			want: []string{kitchenTemp},
		},
		{
			name: "by service tag",
			sel:  NewSelector().WithServiceTags("floor:first"),
			want: []string{bedroomTemp, bedroomHumidity},
		},
		{
			name: "kind and service tag",
			sel:  NewSelector().WithKind(taxonomy.KindTemperature).WithServiceTags("floor:ground"),
			want: []string{kitchenTemp},
		},
		{
			name: "no match",
			sel:  NewSelector().WithKind(taxonomy.KindDoorLocked),
			want: nil,
		},
		{
			name: "missing channel tag",
			sel:  NewSelector().WithTags("zone:cooking", "zone:sleeping"),
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reg.Find(tt.sel)
			if len(got) != len(tt.want) {
				t.Fatalf("Find returned %v, want ids %v", ids(got), tt.want)
			}
			for _, id := range tt.want {
				if !containsID(got, id) {
					t.Fatalf("Find result %v missing id %q", ids(got), id)
				}
			}
		})
	}
}

func TestSelector_ConflictingConstraints(t *testing.T) {
	reg, _, _, kitchenTemp, _, _, _ := selectorFixture(t)

	sel := NewSelector().
		WithKind(taxonomy.KindTemperature).
		WithKind(taxonomy.KindHumidity)
	if got := reg.Find(sel); len(got) != 0 {
		t.Fatalf("conflicting kinds matched %v, want nothing", ids(got))
	}

	sel = NewSelector().WithID(kitchenTemp).WithID("some-other-id")
	if got := reg.Find(sel); len(got) != 0 {
		t.Fatalf("conflicting ids matched %v, want nothing", ids(got))
	}

	// Restating the same constraint is not a conflict.
	sel = NewSelector().WithID(kitchenTemp).WithID(kitchenTemp)
	if got := reg.Find(sel); len(got) != 1 {
		t.Fatalf("restated id matched %v, want one handle", ids(got))
	}
}

func TestSelector_And(t *testing.T) {
	reg, kitchen, _, kitchenTemp, _, _, _ := selectorFixture(t)

	byKind := NewSelector().WithKind(taxonomy.KindTemperature)
	byService := NewSelector().WithService(kitchen.ID())

	got := reg.Find(byKind.And(byService))
	if len(got) != 1 || got[0].ChannelID != kitchenTemp {
		t.Fatalf("And match = %v, want [%s]", ids(got), kitchenTemp)
	}

	// And with contradictory sides matches nothing.
	other := NewSelector().WithKind(taxonomy.KindHumidity)
	if got := reg.Find(byKind.And(other)); len(got) != 0 {
		t.Fatalf("contradictory And matched %v", ids(got))
	}
}

func TestSelector_ValueInsensitive(t *testing.T) {
	// Selectors are value types: deriving a narrowed selector must not
	// mutate the original.
	reg, _, _, kitchenTemp, _, bedroomTemp, _ := selectorFixture(t)

	base := NewSelector().WithKind(taxonomy.KindTemperature)
	narrowed := base.WithID(kitchenTemp)

	if got := reg.Find(narrowed); len(got) != 1 {
		t.Fatalf("narrowed selector matched %v", ids(got))
	}
	got := reg.Find(base)
	if !containsID(got, bedroomTemp) {
		t.Fatalf("base selector lost matches after derivation: %v", ids(got))
	}
}
