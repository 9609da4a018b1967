package bdata

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"git.thinkinpower.net/cardtype/cardtype"
	"git.thinkinpower.net/cardtype/mod"
	"github.com/pkg/errors"
)

const (
	binDataColumns = 15
	// an iin_start..iin_end range expands to one record per IIN
	maxRangeSize = 100000
)

// read returns the lines of filepath starting at seekOffset and the offset
// just past the last line it consumed. A last line without a newline is kept
// when whole is set; otherwise it is left for the next read, since a writer
// may still be appending to it.
func read(filepath string, seekOffset int64, whole bool) ([]string, int64, error) {
	var (
		file *os.File
		err  error
	)
	if file, err = os.Open(filepath); err != nil {
		return nil, seekOffset, err
	}
	defer file.Close()

	if _, err = file.Seek(seekOffset, io.SeekStart); err != nil {
		return nil, seekOffset, err
	}

	result := make([]string, 0, 4096)
	reader := bufio.NewReader(file)
	offset := seekOffset
	lineNum := 0
	for {
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, seekOffset, err
		}
		if err == io.EOF && (!whole || line == "") {
			break
		}
		offset += int64(len(line))
		lineNum += 1
		//skip header
		if seekOffset == 0 && lineNum == 1 {
			continue
		}
		line = strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(line) != "" {
			result = append(result, line)
		}
		if err == io.EOF {
			break
		}
	}
	return result, offset, nil
}

// parse expands one data line into records.
//id,iin_start,iin_end,number_length,number_luhn,scheme,brand,type,prepaid,country,
//bank_name,bank_logo,bank_url,bank_phone,bank_city
func parse(value string, status mod.BinStatus) ([]mod.BinData, error) {
	values := strings.Split(value, ",")
	if len(values) != binDataColumns {
		return nil, errors.Errorf("want %d columns, got %d", binDataColumns, len(values))
	}
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}

	var (
		id                              int64
		startId, endId, currentIinStart uint32
		err                             error
	)
	if id, err = strconv.ParseInt(values[0], 10, 64); err != nil {
		return nil, errors.Wrapf(err, "invalid id %s", values[0])
	}
	if startId, err = bin2Uint32(values[1]); err != nil {
		return nil, err
	}
	endId = startId
	if values[2] != "" {
		if endId, err = bin2Uint32(values[2]); err != nil {
			return nil, err
		}
	}
	if endId < startId {
		return nil, errors.Errorf("iin_end %d before iin_start %d", endId, startId)
	}
	if endId-startId >= maxRangeSize {
		return nil, errors.Errorf("iin range %d-%d too large", startId, endId)
	}

	numberLength := int8(-1)
	if values[3] != "" {
		var n int64
		if n, err = strconv.ParseInt(values[3], 10, 8); err != nil {
			return nil, errors.Wrapf(err, "invalid number_length %s", values[3])
		}
		numberLength = int8(n)
	}

	currentIinStart = startId
	result := make([]mod.BinData, 0, endId-startId+1)
	for {
		bindata := mod.BinData{
			Id:           id,
			IinStart:     currentIinStart,
			IinEnd:       currentIinStart,
			NumberLength: numberLength,
			NumberLuhn:   values[4],
			Prepaid:      values[8],
			Status:       status,
			BaseBinData: mod.BaseBinData{
				Schema:    values[5],
				Brand:     values[6],
				CardType:  values[7],
				Country:   values[9],
				BankName:  values[10],
				BankLogo:  values[11],
				BankUrl:   values[12],
				BankPhone: values[13],
				BankCity:  values[14],
			},
		}
		if bindata.Schema == "" {
			if t, ok := cardtype.Brand(strconv.FormatUint(uint64(currentIinStart), 10)); ok {
				bindata.Schema = t.Type
			}
		}
		result = append(result, bindata)
		if currentIinStart == endId {
			break
		}
		currentIinStart += 1
	}
	return result, nil
}
