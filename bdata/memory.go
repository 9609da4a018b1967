package bdata

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"git.thinkinpower.net/cardtype/file"
	"git.thinkinpower.net/cardtype/mod"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
)

var (
	binDataFileExt            = ".bd"
	binDataApproximateFileExt = ".bd2"
)

// recordKey identifies a stored record; id is only set for approximate ones.
type recordKey struct {
	bin         uint32
	id          int64
	approximate bool
}

type memoryDatabase struct {
	lock           sync.RWMutex
	dataMap        map[uint32]mod.BinData
	approximateMap map[uint32]map[int64]mod.BinData
	// bytes already loaded per data file
	offsets map[string]int64
	// records stored from each data file
	sources map[string]map[recordKey]struct{}
	dataDir string
}

func NewMemoryDatabase() BinDatabase {
	return newMemoryDatabase()
}

func newMemoryDatabase() *memoryDatabase {
	return &memoryDatabase{
		dataMap:        make(map[uint32]mod.BinData),
		approximateMap: make(map[uint32]map[int64]mod.BinData),
		offsets:        make(map[string]int64),
		sources:        make(map[string]map[recordKey]struct{}),
	}
}

func isBinDataFile(filepath string) bool {
	ext := path.Ext(filepath)
	return binDataFileExt == ext || binDataApproximateFileExt == ext
}

func (m *memoryDatabase) Init(cfg BinDataConfig) error {
	m.dataDir = cfg.DataDir
	if cfg.DataDir == "" {
		logger.Warn("bin data directory not configured, bin database is empty")
		return nil
	}

	filepaths, err := file.SearchDir(cfg.DataDir, isBinDataFile)
	if err != nil {
		return errors.Wrapf(err, "memory database init failed, dataDir: %s", cfg.DataDir)
	}
	for _, filepath := range filepaths {
		if err = m.load(filepath, true); err != nil {
			return errors.Wrap(err, "初始化内存数据库失败")
		}
	}
	logger.WithFields(logger.Fields{
		"dataDir":     cfg.DataDir,
		"files":       len(filepaths),
		"exact":       len(m.dataMap),
		"approximate": len(m.approximateMap),
	}).Info("memory bin database loaded")
	return nil
}

func (m *memoryDatabase) owns(name string) bool {
	dir := filepath.Clean(m.dataDir) + string(filepath.Separator)
	return strings.HasPrefix(filepath.Clean(name), dir)
}

// load reads filepath from the start when created is true, otherwise from the
// offset reached by the previous load. A file that shrank below that offset
// was rewritten and is read from the start as well. Reading a file from the
// start replaces the records it contributed before.
func (m *memoryDatabase) load(filepath string, created bool) error {
	var seekOffset int64
	whole := created
	if !created {
		m.lock.RLock()
		seekOffset = m.offsets[filepath]
		m.lock.RUnlock()
		if info, err := os.Stat(filepath); err == nil && info.Size() < seekOffset {
			logger.Infof("bin data file truncated, reloading: %s", filepath)
			seekOffset, whole = 0, true
		}
	}

	filedata, offset, err := read(filepath, seekOffset, whole)
	if err != nil {
		logger.Errorf("读取文件失败, error: %s, filepath: %s", err, filepath)
		return errors.Wrapf(err, "read %s", filepath)
	}

	status := mod.BinStatusTruly
	if path.Ext(filepath) == binDataApproximateFileExt {
		status = mod.BinStatusApproximate
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	if whole {
		m.forget(filepath)
	}
	for _, value := range filedata {
		binDataSet, err := parse(value, status)
		if err != nil {
			logger.Errorf("parse bin data error: %s, data: %s", err, value)
			continue
		}
		for _, d := range binDataSet {
			m.save2Memory(filepath, d)
		}
	}
	m.offsets[filepath] = offset
	return nil
}

// forget drops the records stored from filepath. Callers hold m.lock.
func (m *memoryDatabase) forget(filepath string) {
	for key := range m.sources[filepath] {
		if !key.approximate {
			delete(m.dataMap, key.bin)
			continue
		}
		if valueMap, ok := m.approximateMap[key.bin]; ok {
			delete(valueMap, key.id)
			if len(valueMap) == 0 {
				delete(m.approximateMap, key.bin)
			}
		}
	}
	delete(m.sources, filepath)
}

func (m *memoryDatabase) refresh(e file.FileEvent) {
	if !isBinDataFile(e.Filepath) || !m.owns(e.Filepath) {
		return
	}
	if err := m.load(e.Filepath, e.FileCreated); err != nil {
		logger.Errorf("refresh bin data error: %s", err)
		return
	}
	logger.Infof("bin data refreshed: %s", e.Filepath)
}

func (m *memoryDatabase) ReadExact(bin uint32) (mod.BinData, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	if result, ok := m.dataMap[bin]; ok {
		return result, nil
	}
	return NullBinData, errors.Wrapf(ErrNotFound, "%d", bin)
}

// ReadApproximate returns every approximate record of bin ordered by id.
func (m *memoryDatabase) ReadApproximate(bin uint32) ([]mod.BinData, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	value, ok := m.approximateMap[bin]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "%d", bin)
	}
	result := make([]mod.BinData, 0, len(value))
	for _, v := range value {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Id < result[j].Id })
	return result, nil
}

// save2Memory keeps the first record seen for a bin (or bin and id, for
// approximate records) and remembers which file it came from. Records are
// keyed by IIN, so when two files carry the same one the file loaded first
// wins until it drops the record. Callers hold m.lock.
func (m *memoryDatabase) save2Memory(from string, bindata mod.BinData) {
	bin := bindata.IinStart
	key := recordKey{bin: bin}
	if bindata.Status == mod.BinStatusApproximate {
		valueMap, ok := m.approximateMap[bin]
		if !ok {
			valueMap = make(map[int64]mod.BinData, 10)
			m.approximateMap[bin] = valueMap
		}
		if _, ok = valueMap[bindata.Id]; ok {
			return
		}
		valueMap[bindata.Id] = bindata
		key.id, key.approximate = bindata.Id, true
	} else {
		if _, ok := m.dataMap[bin]; ok {
			return
		}
		m.dataMap[bin] = bindata
	}

	keys, ok := m.sources[from]
	if !ok {
		keys = make(map[recordKey]struct{})
		m.sources[from] = keys
	}
	keys[key] = struct{}{}
}
