package bdata

import (
	"path/filepath"
	"testing"

	"git.thinkinpower.net/cardtype/file"
	"git.thinkinpower.net/cardtype/mod"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryDatabaseInit(t *testing.T) {
	dir := tempDataDir(t)
	writeDataFile(t, dir, "bindata.bd", testHeader+
		"1,622126,,16,luhn,unionpay,UnionPay,debit,N,China,ICBC,,,,\n"+
		"2,broken\n")
	writeDataFile(t, dir, "20190601/approximate.bd2", testHeader+
		"9,411111,,16,luhn,visa,Visa,credit,N,USA,Bank B,,,,\n"+
		"4,411111,,16,luhn,visa,Visa,credit,N,USA,Bank A,,,,\n")
	writeDataFile(t, dir, "notes.txt", "ignored")

	m := newMemoryDatabase()
	require.NoError(t, m.Init(BinDataConfig{DataDir: dir}))

	exact, err := m.ReadExact(622126)
	require.NoError(t, err)
	assert.Equal(t, "ICBC", exact.BankName)
	assert.Equal(t, mod.BinStatusTruly, exact.Status)

	_, err = m.ReadExact(411111)
	assert.Equal(t, ErrNotFound, errors.Cause(err))

	approximate, err := m.ReadApproximate(411111)
	require.NoError(t, err)
	require.Len(t, approximate, 2)
	assert.Equal(t, "Bank A", approximate[0].BankName)
	assert.Equal(t, "Bank B", approximate[1].BankName)

	_, err = m.ReadApproximate(622126)
	assert.Error(t, err)
}

func TestMemoryDatabaseEmptyDir(t *testing.T) {
	m := newMemoryDatabase()
	require.NoError(t, m.Init(BinDataConfig{}))
	_, err := m.ReadExact(622126)
	assert.Error(t, err)

	err = newMemoryDatabase().Init(BinDataConfig{DataDir: filepath.Join(tempDataDir(t), "missing")})
	assert.Error(t, err)
}

func TestMemoryDatabaseRefresh(t *testing.T) {
	dir := tempDataDir(t)
	path := writeDataFile(t, dir, "bindata.bd", testHeader+
		"1,622126,,16,luhn,unionpay,UnionPay,debit,N,China,ICBC,,,,\n")

	m := newMemoryDatabase()
	require.NoError(t, m.Init(BinDataConfig{DataDir: dir}))

	useDatabase(t, m)

	appendDataFile(t, path, "2,622127,,16,luhn,unionpay,UnionPay,debit,N,China,ABC,,,,\n")
	m.refresh(file.FileEvent{Filepath: path})

	added, err := m.ReadExact(622127)
	require.NoError(t, err)
	assert.Equal(t, "ABC", added.BankName)

	created := writeDataFile(t, dir, "20190602/bindata.bd", testHeader+
		"3,356600,,16,luhn,jcb,JCB,credit,N,Japan,JCB,,,,\n")
	notifyFileListeners(file.FileEvent{Filepath: created, FileCreated: true})

	jcb, err := m.ReadExact(356600)
	require.NoError(t, err)
	assert.Equal(t, "jcb", jcb.Schema)
}

func TestMemoryDatabaseKeepsFirstRecord(t *testing.T) {
	m := newMemoryDatabase()
	m.save2Memory("a.bd", mod.BinData{Id: 1, IinStart: 1, BaseBinData: mod.BaseBinData{BankName: "first"}, Status: mod.BinStatusTruly})
	m.save2Memory("b.bd", mod.BinData{Id: 2, IinStart: 1, BaseBinData: mod.BaseBinData{BankName: "second"}, Status: mod.BinStatusTruly})

	got, err := m.ReadExact(1)
	require.NoError(t, err)
	assert.Equal(t, "first", got.BankName)
}

func TestMemoryDatabaseOwns(t *testing.T) {
	m := newMemoryDatabase()
	m.dataDir = "/data/bin"
	assert.True(t, m.owns("/data/bin/a.bd"))
	assert.True(t, m.owns("/data/bin/20190601/a.bd"))
	assert.False(t, m.owns("/data/binary/a.bd"))
	assert.False(t, m.owns("/other/a.bd"))
}

func TestMemoryDatabaseLastLineWithoutNewline(t *testing.T) {
	dir := tempDataDir(t)
	writeDataFile(t, dir, "bindata.bd", testHeader+
		"1,622126,,16,luhn,unionpay,UnionPay,debit,N,China,ICBC,,,,\n"+
		"2,622127,,16,luhn,unionpay,UnionPay,debit,N,China,ABC,,,,")

	m := newMemoryDatabase()
	require.NoError(t, m.Init(BinDataConfig{DataDir: dir}))

	last, err := m.ReadExact(622127)
	require.NoError(t, err)
	assert.Equal(t, "ABC", last.BankName)
}

func TestMemoryDatabaseRewrittenFile(t *testing.T) {
	dir := tempDataDir(t)
	path := writeDataFile(t, dir, "bindata.bd", testHeader+
		"1,622126,,16,luhn,unionpay,UnionPay,debit,N,China,ICBC,,,,\n"+
		"2,622127,,16,luhn,unionpay,UnionPay,debit,N,China,ABC,,,,\n")
	approximate := writeDataFile(t, dir, "approximate.bd2", testHeader+
		"5,411111,,16,luhn,visa,Visa,credit,N,USA,Chase,,,,\n")

	m := newMemoryDatabase()
	require.NoError(t, m.Init(BinDataConfig{DataDir: dir}))

	// rewritten in place with less content: the stored offset is past the end
	writeDataFile(t, dir, "bindata.bd", testHeader+
		"3,622126,,16,luhn,unionpay,UnionPay,debit,N,China,BOC,,,,\n")
	m.refresh(file.FileEvent{Filepath: path})

	edited, err := m.ReadExact(622126)
	require.NoError(t, err)
	assert.Equal(t, "BOC", edited.BankName)
	_, err = m.ReadExact(622127)
	assert.Equal(t, ErrNotFound, errors.Cause(err))

	// recreated files replace their own records only
	writeDataFile(t, dir, "approximate.bd2", testHeader)
	m.refresh(file.FileEvent{Filepath: approximate, FileCreated: true})
	_, err = m.ReadApproximate(411111)
	assert.Error(t, err)
	_, err = m.ReadExact(622126)
	assert.NoError(t, err)
}

func TestMemoryDatabaseFirstFileWins(t *testing.T) {
	dir := tempDataDir(t)
	writeDataFile(t, dir, "a.bd", testHeader+
		"1,622126,,16,luhn,unionpay,UnionPay,debit,N,China,ICBC,,,,\n")
	second := writeDataFile(t, dir, "b.bd", testHeader+
		"2,622126,,16,luhn,unionpay,UnionPay,debit,N,China,BOC,,,,\n")

	m := newMemoryDatabase()
	require.NoError(t, m.Init(BinDataConfig{DataDir: dir}))

	got, err := m.ReadExact(622126)
	require.NoError(t, err)
	assert.Equal(t, "ICBC", got.BankName)

	// reloading the file whose record lost must not drop the winner
	m.refresh(file.FileEvent{Filepath: second, FileCreated: true})
	got, err = m.ReadExact(622126)
	require.NoError(t, err)
	assert.Equal(t, "ICBC", got.BankName)
}
