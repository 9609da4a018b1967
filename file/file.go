package file

import (
	"io/ioutil"
	"os"
	"path/filepath"
)

type FileEvent struct {
	Filepath    string
	FileCreated bool
}

// SearchDir walks dir recursively and returns the paths of the regular files
// accepted by filter.
func SearchDir(dir string, filter func(filepath string) bool) ([]string, error) {
	var (
		fileInfos []os.FileInfo
		err       error
	)
	result := make([]string, 0, 256)
	if fileInfos, err = ioutil.ReadDir(dir); err != nil {
		return nil, err
	}
	for _, fileInfo := range fileInfos {
		path := filepath.Join(dir, fileInfo.Name())
		if fileInfo.IsDir() {
			var filepaths []string
			if filepaths, err = SearchDir(path, filter); err != nil {
				return nil, err
			}
			result = append(result, filepaths...)
		} else if filter(path) {
			result = append(result, path)
		}
	}
	return result, nil
}
