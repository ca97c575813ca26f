package model

import "time"

// AccessToken holds the credentials returned by the brokerage OAuth
// endpoint. It is owned by a single client instance and replaced
// wholesale on every refresh.
type AccessToken struct {
	TokenType    string `json:"token_type"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	APIServer    string `json:"api_server"`
	ExpiresIn    int    `json:"expires_in"`

	// ObtainedAt is set by the client when the token is acquired.
	ObtainedAt time.Time `json:"-"`
}

// ExpiresAt returns the moment the access token becomes stale.
func (t AccessToken) ExpiresAt() time.Time {
	return t.ObtainedAt.Add(time.Duration(t.ExpiresIn) * time.Second)
}

// Account is one brokerage account, as returned by the accounts endpoint.
type Account struct {
	Type              string `json:"type"`
	Number            string `json:"number"`
	Status            string `json:"status"`
	IsPrimary         bool   `json:"isPrimary"`
	IsBilling         bool   `json:"isBilling"`
	ClientAccountType string `json:"clientAccountType"`
}

// Quote is a single market quote for one symbol.
type Quote struct {
	Symbol         string  `json:"symbol"`
	SymbolID       int     `json:"symbolId"`
	BidPrice       float64 `json:"bidPrice"`
	BidSize        int     `json:"bidSize"`
	AskPrice       float64 `json:"askPrice"`
	AskSize        int     `json:"askSize"`
	LastTradePrice float64 `json:"lastTradePrice"`
	LastTradeSize  int     `json:"lastTradeSize"`
	Volume         int64   `json:"volume"`
	OpenPrice      float64 `json:"openPrice"`
	HighPrice      float64 `json:"highPrice"`
	LowPrice       float64 `json:"lowPrice"`
	Delay          int     `json:"delay"`
	IsHalted       bool    `json:"isHalted"`
}
