package bus

import "weak"

// SubscribeEventFor is SubscribeEvent for a completion that needs its
// owner. The bus keeps only a weak pointer to owner and passes the live
// owner to fn on each dispatch, so fn itself must not capture owner. Once
// owner is collected the subscription goes inert and is pruned. A nil owner
// yields a disposed subscription.
func SubscribeEventFor[T any](b *Bus, id string, owner *T, fn func(owner *T, payload any)) *Subscription {
	if owner == nil || fn == nil {
		return b.SubscribeEvent(id, Target{}, nil)
	}
	wp := weak.Make(owner)
	return b.SubscribeEvent(id, weakTarget(wp), func(payload any) {
		if o := wp.Value(); o != nil {
			fn(o, payload)
		}
	})
}

// SubscribeDataFor is SubscribeData for completions that need their owner.
// It holds owner weakly in the same way as SubscribeEventFor. empty may be nil.
func SubscribeDataFor[T any](b *Bus, id string, owner *T, fn func(owner *T, value any), empty func(owner *T)) *Subscription {
	if owner == nil || (fn == nil && empty == nil) {
		return b.SubscribeData(id, Target{}, nil, nil)
	}
	wp := weak.Make(owner)
	var onValue func(any)
	if fn != nil {
		onValue = func(value any) {
			if o := wp.Value(); o != nil {
				fn(o, value)
			}
		}
	}
	var onEmpty func()
	if empty != nil {
		onEmpty = func() {
			if o := wp.Value(); o != nil {
				empty(o)
			}
		}
	}
	return b.SubscribeData(id, weakTarget(wp), onValue, onEmpty)
}

// SubscribeDataOfFor is SubscribeDataFor with the value asserted to P.
// Values of another type are skipped.
func SubscribeDataOfFor[T, P any](b *Bus, id string, owner *T, fn func(owner *T, value P), empty func(owner *T)) *Subscription {
	var wrapped func(*T, any)
	if fn != nil {
		wrapped = func(o *T, value any) {
			if v, ok := value.(P); ok {
				fn(o, v)
			}
		}
	}
	return SubscribeDataFor(b, id, owner, wrapped, empty)
}

// SubscribeEventOfFor is SubscribeEventFor with the payload asserted to P.
func SubscribeEventOfFor[T, P any](b *Bus, id string, owner *T, fn func(owner *T, payload P)) *Subscription {
	if fn == nil {
		return SubscribeEventFor[T](b, id, owner, nil)
	}
	return SubscribeEventFor(b, id, owner, func(o *T, payload any) {
		if v, ok := payload.(P); ok {
			fn(o, v)
		}
	})
}

func weakTarget[T any](wp weak.Pointer[T]) Target {
	return Target{alive: func() bool { return wp.Value() != nil }}
}
