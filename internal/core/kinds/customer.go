package kinds

import "github.com/JonMunkholm/PharmaDB/internal/core"

func init() {
	core.Register(core.EntityKind{
		Name: "customer",
		Rules: []core.FieldRule{
			{
				Field:  "Name",
				Check:  namePattern.MatchString,
				Reason: "Invalid Name. Must be 2-50 characters long and contain only letters and spaces.",
			},
			{
				Field:  "Phone",
				Check:  phonePattern.MatchString,
				Reason: "Invalid Phone Number. Must be 10 digits.",
			},
			{
				Field:  "Email",
				Check:  emailPattern.MatchString,
				Reason: "Invalid Email Format.",
			},
		},
	})
}
