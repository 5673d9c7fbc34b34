package event

import "testing"

func TestBusDispatchOrder(t *testing.T) {
	bus := NewBus()

	var order []int
	bus.Subscribe(HealthChanged, func(Event) { order = append(order, 1) })
	bus.Subscribe(HealthChanged, func(Event) { order = append(order, 2) })
	bus.Subscribe(HealthChanged, func(Event) { order = append(order, 3) })

	bus.Publish(Event{Type: HealthChanged})

	if len(order) != 3 {
		t.Fatalf("Expected 3 handlers called, got %d", len(order))
	}
	for i, v := range order {
		if v != i+1 {
			t.Errorf("Handler %d ran out of order: got %d", i+1, v)
		}
	}
}

func TestBusSynchronousDelivery(t *testing.T) {
	bus := NewBus()

	delivered := false
	bus.Subscribe(Died, func(Event) { delivered = true })

	bus.Publish(Event{Type: Died})

	// Delivery must complete before Publish returns
	if !delivered {
		t.Error("Handler should have run before Publish returned")
	}
}

func TestBusTypeFiltering(t *testing.T) {
	bus := NewBus()

	var got []Type
	bus.Subscribe(LevelChanged, func(e Event) { got = append(got, e.Type) })

	bus.Publish(Event{Type: LevelStarted})
	bus.Publish(Event{Type: LevelChanged})
	bus.Publish(Event{Type: Died})

	if len(got) != 1 || got[0] != LevelChanged {
		t.Errorf("Handler should only see LevelChanged events, got %v", got)
	}
}

func TestBusCancel(t *testing.T) {
	bus := NewBus()

	count := 0
	sub := bus.Subscribe(HealthChanged, func(Event) { count++ })

	bus.Publish(Event{Type: HealthChanged})
	sub.Cancel()
	bus.Publish(Event{Type: HealthChanged})

	if count != 1 {
		t.Errorf("Cancelled handler should not receive events, got %d calls", count)
	}

	// Double cancel must be harmless
	sub.Cancel()
}

func TestBusCancelPreservesOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe(HealthChanged, func(Event) { order = append(order, "a") })
	mid := bus.Subscribe(HealthChanged, func(Event) { order = append(order, "b") })
	bus.Subscribe(HealthChanged, func(Event) { order = append(order, "c") })

	mid.Cancel()
	bus.Publish(Event{Type: HealthChanged})

	if len(order) != 2 || order[0] != "a" || order[1] != "c" {
		t.Errorf("Expected [a c], got %v", order)
	}
}

func TestBusSubscribeDuringDispatch(t *testing.T) {
	bus := NewBus()

	count := 0
	bus.Subscribe(HealthChanged, func(Event) {
		bus.Subscribe(HealthChanged, func(Event) { count++ })
	})

	// New handler must not fire during the publish that added it
	bus.Publish(Event{Type: HealthChanged})
	if count != 0 {
		t.Errorf("Handler added during dispatch fired immediately, count=%d", count)
	}

	bus.Publish(Event{Type: HealthChanged})
	if count != 1 {
		t.Errorf("Handler added during dispatch should fire on next publish, count=%d", count)
	}
}
