package cardtype

const (
	Visa            = "visa"
	Mastercard      = "master-card"
	AmericanExpress = "american-express"
	DinersClub      = "diners-club"
	UnionPay        = "unionpay"
	Hipercard       = "hipercard"
	Elo             = "elo"
)

// security code names
const (
	CVV = "CVV"
	CVC = "CVC"
	CID = "CID"
	CVN = "CVN"
)

type rule struct {
	info   Type
	prefix matcher
	exact  matcher
}

var (
	visaPattern = newPattern(`^4\d{12}(?:\d{3})?$`, "438935", "4011", "451416", "4576")

	unionPayPattern = anyOf{
		newPattern(`^62(?:[0-6]|7[0267]|8|9[12])\d*$`,
			"62183", "62188", "62198", "62199", "62206", "622018", "6280", "6281"),
		newPattern(`^622018\d{12}$`),
	}

	hipercardPattern = newPattern(`^(?:38|60)\d{11}(?:\d{3})?(?:\d{3})?$`)
)

// table is read-only after package initialization.
var table = []rule{
	{
		info: Type{
			NiceType: "Visa",
			Type:     Visa,
			Gaps:     []int{4, 8, 12},
			Lengths:  []int{16, 18, 19},
			Code:     Code{Name: CVV, Size: 3},
		},
		prefix: visaPattern,
		exact:  visaPattern,
	},
	{
		info: Type{
			NiceType: "Mastercard",
			Type:     Mastercard,
			Gaps:     []int{4, 8, 12},
			Lengths:  []int{16},
			Code:     Code{Name: CVC, Size: 3},
		},
		prefix: newPattern(`^(?:5|5[1-5]|2|22|222|222[1-9]|2[3-6]|27|27[0-2]|2720)$`),
		exact:  newPattern(`^(?:5[1-5]|222[1-9]|2[3-6]|27[0-1]|2720)\d*$`),
	},
	{
		info: Type{
			NiceType: "American Express",
			Type:     AmericanExpress,
			Gaps:     []int{4, 10},
			Lengths:  []int{15},
			Code:     Code{Name: CID, Size: 4},
			IsAmex:   true,
		},
		prefix: newPattern(`^(?:3|34|37)$`),
		exact:  newPattern(`^3[47]\d*$`),
	},
	{
		info: Type{
			NiceType: "Diners Club",
			Type:     DinersClub,
			Gaps:     []int{4, 10},
			Lengths:  []int{14, 16, 19},
			Code:     Code{Name: CVV, Size: 3},
		},
		prefix: newPattern(`^(?:3|3[0689]|30[0-5])$`),
		exact:  newPattern(`^3(?:0[0-5]|[689])\d*$`),
	},
	{
		info: Type{
			NiceType: "UnionPay",
			Type:     UnionPay,
			Gaps:     []int{4, 8, 12},
			Lengths:  []int{16, 17, 18, 19},
			Code:     Code{Name: CVN, Size: 3},
		},
		prefix: unionPayPattern,
		exact:  unionPayPattern,
	},
	{
		info: Type{
			NiceType: "Hipercard",
			Type:     Hipercard,
			Gaps:     []int{4, 8, 12},
			Lengths:  []int{16},
			Code:     Code{Name: CVC, Size: 3},
		},
		prefix: hipercardPattern,
		exact:  hipercardPattern,
	},
	{
		info: Type{
			NiceType: "Elo",
			Type:     Elo,
			Gaps:     []int{4, 6, 12},
			Lengths:  []int{16},
			Code:     Code{Name: CVC, Size: 3},
		},
		prefix: newPattern(`^[456](?:011|38935|51416|576|04175|067|06699|36368|36297)\d{10}(?:\d{2})?$`),
		exact:  newPattern(`^(?:40117[8-9]|431274|438935|451416|457393|45763[1-2]|506(?:699|7[0-6][0-9]|77[0-8])|509\d{3}|504175|627780|636297|636368|65003[1-3]|6500(?:3[5-9]|4[0-9]|5[0-1])|6504(?:0[5-9]|[1-3][0-9])|650(?:4[8-9][0-9]|5[0-2][0-9]|53[0-8])|6505(?:4[1-9]|[5-8][0-9]|9[0-8])|6507(?:0[0-9]|1[0-8])|65072[0-7]|6509(?:0[1-9]|1[0-9]|20)|6516(?:5[2-9]|[6-7][0-9])|6550(?:[0-1][0-9]|2[1-9]|[3-4][0-9]|5[0-8]))$`),
	},
}

var index = func() map[string]*rule {
	m := make(map[string]*rule, len(table))
	for i := range table {
		m[table[i].info.Type] = &table[i]
	}
	return m
}()
