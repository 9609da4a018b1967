package bdata

import (
	"regexp"
	"strconv"
	"sync"

	"git.thinkinpower.net/cardtype/cardtype"
	"git.thinkinpower.net/cardtype/data"
	"git.thinkinpower.net/cardtype/file"
	"git.thinkinpower.net/cardtype/mod"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

var (
	ErrInvalidBin = errors.New("invalid bin")
	ErrNotFound   = errors.New("bin not found")
)

const iinLength = 6

var (
	NullBinData mod.BinData
	binPattern  = regexp.MustCompile(`^\d{6,8}$`)
)

var (
	databaseLock       sync.RWMutex
	currentBinDatabase BinDatabase
	listenerLock       sync.RWMutex
	fileEventListeners []fileEventListener
)

type fileEventListener func(file.FileEvent)

// fileRefresher is implemented by databases that reload data files on change.
type fileRefresher interface {
	refresh(event file.FileEvent)
}

func init() {
	AddFileListener(refreshBinDatabase)
}

// refreshBinDatabase hands file events to whichever database is current, so a
// replaced database stops reloading.
func refreshBinDatabase(event file.FileEvent) {
	if r, ok := binDatabase().(fileRefresher); ok {
		r.refresh(event)
	}
}

type BinDataConfig struct {
	DataDir string
}

type BinDatabase interface {
	Init(cfg BinDataConfig) error
	ReadExact(bin uint32) (mod.BinData, error)
	ReadApproximate(bin uint32) ([]mod.BinData, error)
}

// SetBinDatabaseMode creates the database for mode, loads cfg.DataDir into it
// and makes it the one Query reads from.
func SetBinDatabaseMode(mode string, cfg BinDataConfig) error {
	var db BinDatabase
	switch mode {
	case data.BinDatabaseModeMemory:
		db = NewMemoryDatabase()
	case data.BinDatabaseModeRedis:
		logger.Warnf("bin database mode %s not implemented, using %s", mode, data.BinDatabaseModeMemory)
		db = NewMemoryDatabase()
	default:
		return errors.Errorf("unknown bin database mode %s", mode)
	}
	if err := db.Init(cfg); err != nil {
		return errors.Wrap(err, "init bin database")
	}
	SetBinDatabase(db)
	return nil
}

func SetBinDatabase(db BinDatabase) {
	databaseLock.Lock()
	currentBinDatabase = db
	databaseLock.Unlock()
}

func binDatabase() BinDatabase {
	databaseLock.RLock()
	defer databaseLock.RUnlock()
	return currentBinDatabase
}

func AddFileListener(listener fileEventListener) {
	listenerLock.Lock()
	fileEventListeners = append(fileEventListeners, listener)
	listenerLock.Unlock()
}

func notifyFileListeners(event file.FileEvent) {
	listenerLock.RLock()
	listeners := append([]fileEventListener(nil), fileEventListeners...)
	listenerLock.RUnlock()
	for _, listener := range listeners {
		listener(event)
	}
}

func bin2Uint32(bin string) (uint32, error) {
	ibin, err := strconv.ParseUint(bin, 10, 32)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidBin, "%s", bin)
	}
	return uint32(ibin), nil
}

// Query looks bin up in the current database and classifies it. A bin longer
// than six digits falls back to its six digit IIN when it has no record of its
// own.
func Query(bin string) (*mod.BinResult, error) {
	if !binPattern.MatchString(bin) {
		return nil, errors.Wrapf(ErrInvalidBin, "%s", bin)
	}

	result := &mod.BinResult{Bin: bin, Status: mod.BinStatusUnknown, Types: cardtype.Classify(bin)}
	if db := binDatabase(); db != nil {
		candidates := []string{bin}
		if len(bin) > iinLength {
			candidates = append(candidates, bin[:iinLength])
		}
		for _, candidate := range candidates {
			if issuer, ok := readIssuer(db, candidate); ok {
				result.Status = issuer.Status
				result.Issuer = &issuer.BaseBinData
				break
			}
		}
	}

	if result.Issuer == nil && len(result.Types) == 0 {
		return nil, errors.Wrapf(ErrNotFound, "%s", bin)
	}
	return result, nil
}

func readIssuer(db BinDatabase, bin string) (mod.BinData, bool) {
	key, err := bin2Uint32(bin)
	if err != nil {
		return NullBinData, false
	}
	if issuer, err := db.ReadExact(key); err == nil {
		return issuer, true
	}
	if issuers, err := db.ReadApproximate(key); err == nil && len(issuers) > 0 {
		return issuers[0], true
	}
	return NullBinData, false
}
