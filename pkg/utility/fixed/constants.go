package fixed

var (
	NegOne = FromInt64(-1, 0)
	Zero   = FromInt64(0, 0)
	One    = FromInt64(1, 0)
	Two    = FromInt64(2, 0)
	Ten    = FromInt64(10, 0)

	Thousand = FromInt64(1000, 0)
)
