package positions

// USD is a helper for test to create dollars from const
func USD(v float64) Money { return M(v, "USD") }

// order is a helper for test to create an order from floats.
func order(id int, action Action, amount, value float64) Order {
	return NewOrder(id, action, Q(amount), USD(value))
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
