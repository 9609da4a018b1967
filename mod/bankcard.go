package mod

import "git.thinkinpower.net/cardtype/cardtype"

type BinData struct {
	Id           int64     `json:"id"`
	IinStart     uint32    `json:"iin_start"`
	IinEnd       uint32    `json:"iin_end"`
	NumberLength int8      `json:"number_length"`
	NumberLuhn   string    `json:"number_luhn"`
	Prepaid      string    `json:"prepaid"`
	Status       BinStatus `json:"status"`
	BaseBinData
}

type BaseBinData struct {
	Schema    string `json:"schema"`     //mastercard, visa, unionpay, etc
	Brand     string `json:"brand"`      //发卡机构品牌
	CardType  string `json:"card_type"`  //卡类型, debit or credit
	Country   string `json:"country"`    //国家, 英文名称
	BankName  string `json:"bank_name"`  //银行, 英文名称
	BankLogo  string `json:"bank_logo"`  //银行logo, url
	BankUrl   string `json:"bank_url"`   //银行官网
	BankPhone string `json:"bank_phone"` //银行服务电话
	BankCity  string `json:"bank_city"`  //银行所在城市
}

// BinResult is what a BIN query returns: the issuer record, if any, and the
// card brands the BIN itself may belong to.
type BinResult struct {
	Bin    string          `json:"bin"`
	Status BinStatus       `json:"status"`
	Issuer *BaseBinData    `json:"issuer,omitempty"`
	Types  []cardtype.Type `json:"types"`
}

type BinStatus uint8

const (
	//未知
	BinStatusUnknown BinStatus = 0
	//近似
	BinStatusApproximate BinStatus = 1
	//确切
	BinStatusTruly BinStatus = 2
)
