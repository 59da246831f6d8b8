package bus

// SubscribeEventOf is SubscribeEvent with the payload asserted to P.
// Payloads of any other type, including nil, are not delivered.
func SubscribeEventOf[P any](b *Bus, id string, target Target, fn func(payload P)) *Subscription {
	if fn == nil {
		return b.SubscribeEvent(id, target, nil)
	}
	return b.SubscribeEvent(id, target, func(payload any) {
		if v, ok := payload.(P); ok {
			fn(v)
		}
	})
}

// SubscribeDataOf is SubscribeData with the value asserted to P.
// Stored values of another type are skipped; the empty state still reaches empty.
func SubscribeDataOf[P any](b *Bus, id string, target Target, fn func(value P), empty func()) *Subscription {
	var wrapped func(any)
	if fn != nil {
		wrapped = func(value any) {
			if v, ok := value.(P); ok {
				fn(v)
			}
		}
	}
	return b.SubscribeData(id, target, wrapped, empty)
}

// SharedDataOf returns the value under id if one is stored and it has type P.
func SharedDataOf[P any](b *Bus, id string) (P, bool) {
	var zero P
	v, ok := b.SharedData(id)
	if !ok {
		return zero, false
	}
	p, ok := v.(P)
	if !ok {
		return zero, false
	}
	return p, true
}

// SharedDataOrOf returns the value under id as P, or def when it is absent
// or of another type.
func SharedDataOrOf[P any](b *Bus, id string, def P) P {
	if v, ok := SharedDataOf[P](b, id); ok {
		return v
	}
	return def
}
