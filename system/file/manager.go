package file

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/afero"
)

var AppFs = afero.NewOsFs()

func IsPathExist(path string) (bool, error) {
	return afero.Exists(AppFs, path)
}

func Stat(path string) (os.FileInfo, error) {
	i, err := AppFs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file %s: %w", path, err)
	}
	return i, nil
}

func Create(path string) (afero.File, error) {
	slog.Debug("Creating file: " + path)
	fh, err := AppFs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}
	slog.Debug("File created")
	return fh, nil
}

func Open(path string) (afero.File, error) {
	fh, err := AppFs.Open(path)
	if err != nil {
		return nil, err
	}
	return fh, nil
}

// Write replaces the contents of path, creating parent directories as needed.
func Write(path string, contents []byte, mode os.FileMode) error {
	slog.Debug("Writing file: " + path)
	if err := afero.WriteFile(AppFs, path, contents, mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func Read(path string) ([]byte, error) {
	contents, err := afero.ReadFile(AppFs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return contents, nil
}

func Move(src, dest string) error {
	slog.Debug("Moving file from " + src + " to " + dest)
	if err := AppFs.Rename(src, dest); err != nil {
		return fmt.Errorf("failed to move file: %w", err)
	}
	slog.Debug("Move complete")
	return nil
}

func Copy(src, dest string) error {
	slog.Debug("Copying file from " + src + " to " + dest)

	sourceFileStat, err := AppFs.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat file %s during copy: %w", src, err)
	}

	if !sourceFileStat.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	sourceFh, err := Open(src)
	if err != nil {
		return fmt.Errorf("failed to open copy source file '%s': %w", src, err)
	}
	defer sourceFh.Close()

	destinationFh, err := Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create copy destination file '%s': %w", dest, err)
	}
	defer destinationFh.Close()

	_, err = io.Copy(destinationFh, sourceFh)
	if err != nil {
		return fmt.Errorf("failed to copy '%s' to '%s': %w", src, dest, err)
	}

	slog.Debug("Copy complete")

	return nil
}

func DownloadFile(url string, filepath string) error {
	slog.Debug("Downloading file from " + url + " to " + filepath)

	contents, err := DownloadBytes(url)
	if err != nil {
		return err
	}

	newFh, err := Create(filepath)
	if err != nil {
		return fmt.Errorf("failed to save download to file '%s': %w", filepath, err)
	}
	defer newFh.Close()

	if _, err := newFh.Write(contents); err != nil {
		return fmt.Errorf("failed to save download to file '%s': %w", filepath, err)
	}

	slog.Debug("Download complete")

	return nil
}

// DownloadBytes fetches url into memory. Non-200 responses are errors.
func DownloadBytes(url string) ([]byte, error) {
	slog.Debug("Downloading " + url)

	request, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for '%s': %w", url, err)
	}
	client := &http.Client{}

	resp, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download '%s' with status '%s'", url, resp.Status)
	}

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from '%s': %w", url, err)
	}

	slog.Debug("Download complete")

	return contents, nil
}
