package kinds

import "github.com/JonMunkholm/PharmaDB/internal/core"

func init() {
	core.Register(core.EntityKind{
		Name: "product",
		Rules: []core.FieldRule{
			{
				Field:  "Name",
				Check:  notBlank,
				Reason: "Product name cannot be empty.",
			},
			{
				// No sign, no thousands separators, at most two decimals.
				Field:  "Price",
				Check:  pricePattern.MatchString,
				Reason: "Invalid Price Format. Must be a number with up to 2 decimal places.",
			},
		},
	})
}
