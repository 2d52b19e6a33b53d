package domain

// Transfer is an instruction to move Amount from the contract to To. The core
// only emits transfers; the bank executes them.
type Transfer struct {
	To     Address `json:"to"`
	Amount CoinBag `json:"amount"`
}

// Attribute is a key/value event attribute attached to a response.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
