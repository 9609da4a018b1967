package bdata

import (
	"testing"

	"git.thinkinpower.net/cardtype/cardtype"
	"git.thinkinpower.net/cardtype/mod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	dir := tempDataDir(t)
	path := writeDataFile(t, dir, "bindata.bd", testHeader+
		"1,622126,,16,luhn,unionpay,UnionPay,debit,N,China,ICBC,,,,\n"+
		"\n"+
		"2,378282,,15,luhn,,Amex,credit,N,USA,AMEX,,,,\n"+
		"3,411111,,16,luhn,visa")

	lines, offset, err := read(path, 0, false)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
	assert.Equal(t, "1,622126,,16,luhn,unionpay,UnionPay,debit,N,China,ICBC,,,,", lines[0])

	appendDataFile(t, path, ",Visa,credit,N,USA,Chase,,,,\n")
	lines, next, err := read(path, offset, false)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "3,411111,,16,luhn,visa,Visa,credit,N,USA,Chase,,,,", lines[0])
	assert.True(t, next > offset)

	lines, _, err = read(path, next, false)
	require.NoError(t, err)
	assert.Empty(t, lines)

	_, _, err = read(path+".missing", 0, true)
	assert.Error(t, err)
}

func TestReadWholeKeepsLastLine(t *testing.T) {
	dir := tempDataDir(t)
	content := testHeader +
		"1,622126,,16,luhn,unionpay,UnionPay,debit,N,China,ICBC,,,,\n" +
		"2,622127,,16,luhn,unionpay,UnionPay,debit,N,China,ABC,,,,"
	path := writeDataFile(t, dir, "bindata.bd", content)

	lines, offset, err := read(path, 0, true)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "2,622127,,16,luhn,unionpay,UnionPay,debit,N,China,ABC,,,,", lines[1])
	assert.Equal(t, int64(len(content)), offset)

	lines, _, err = read(path, offset, false)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestParse(t *testing.T) {
	records, err := parse("7,622126,622128,16,luhn,,UnionPay,debit,N,China,ICBC,logo,url,95588,Beijing", mod.BinStatusTruly)
	require.NoError(t, err)
	require.Len(t, records, 3)

	for i, r := range records {
		assert.Equal(t, int64(7), r.Id)
		assert.Equal(t, uint32(622126+i), r.IinStart)
		assert.Equal(t, r.IinStart, r.IinEnd)
		assert.Equal(t, int8(16), r.NumberLength)
		assert.Equal(t, mod.BinStatusTruly, r.Status)
		assert.Equal(t, cardtype.UnionPay, r.Schema, "empty scheme is filled from the classifier")
		assert.Equal(t, "ICBC", r.BankName)
		assert.Equal(t, "Beijing", r.BankCity)
	}
}

func TestParseKeepsScheme(t *testing.T) {
	records, err := parse("1,411111,,,,visa,Visa,credit,N,USA,Chase,,,,", mod.BinStatusApproximate)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "visa", records[0].Schema)
	assert.Equal(t, int8(-1), records[0].NumberLength)
	assert.Equal(t, mod.BinStatusApproximate, records[0].Status)
}

func TestParseAmbiguousSchemeStaysEmpty(t *testing.T) {
	// six visa digits are too short for the visa rule
	records, err := parse("1,411111,,,,,Visa,credit,N,USA,Chase,,,,", mod.BinStatusTruly)
	require.NoError(t, err)
	assert.Empty(t, records[0].Schema)
}

func TestParseInvalid(t *testing.T) {
	for _, line := range []string{
		"1,411111",
		"x,411111,,,,,,,,,,,,,",
		"1,abc,,,,,,,,,,,,,",
		"1,411111,411110,,,,,,,,,,,,",
		"1,100000,999999,,,,,,,,,,,,",
		"1,411111,,big,,,,,,,,,,,",
	} {
		_, err := parse(line, mod.BinStatusTruly)
		assert.Error(t, err, line)
	}
}
