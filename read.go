package polyview

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
)

// ReadVertices parses whitespace separated floating point numbers until EOF.
// Line breaks carry no meaning, so a file may hold one vertex per line or
// all of them on a single line.
func ReadVertices(r io.Reader) ([]float32, error) {
	var vertices []float32
	err := scanTokens(r, func(n int, tok string) error {
		f, err := strconv.ParseFloat(tok, 32)
		if err != nil {
			return fmt.Errorf("vertex value %d: %w", n, err)
		}
		vertices = append(vertices, float32(f))
		return nil
	})
	return vertices, err
}

// ReadIndices parses whitespace separated unsigned integers until EOF.
func ReadIndices(r io.Reader) ([]uint32, error) {
	var indices []uint32
	err := scanTokens(r, func(n int, tok string) error {
		u, err := strconv.ParseUint(tok, 10, 32)
		if err != nil {
			return fmt.Errorf("index value %d: %w", n, err)
		}
		indices = append(indices, uint32(u))
		return nil
	})
	return indices, err
}

func scanTokens(r io.Reader, fn func(n int, tok string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	n := 0
	for scanner.Scan() {
		if err := fn(n, scanner.Text()); err != nil {
			return err
		}
		n++
	}
	return scanner.Err()
}

// LoadMesh reads a vertex file and an index file from disk and validates the result.
func LoadMesh(verticesPath, indicesPath string) (Mesh, error) {
	return loadMesh(func(name string) (io.ReadCloser, error) { return os.Open(name) }, verticesPath, indicesPath)
}

// LoadMeshFS is like LoadMesh but reads from fsys.
func LoadMeshFS(fsys fs.FS, verticesPath, indicesPath string) (Mesh, error) {
	return loadMesh(func(name string) (io.ReadCloser, error) { return fsys.Open(name) }, verticesPath, indicesPath)
}

func loadMesh(open func(string) (io.ReadCloser, error), verticesPath, indicesPath string) (Mesh, error) {
	var m Mesh
	fp, err := open(verticesPath)
	if err != nil {
		return m, fmt.Errorf("could not open file %s: %w", verticesPath, err)
	}
	m.Vertices, err = ReadVertices(fp)
	fp.Close()
	if err != nil {
		return m, fmt.Errorf("%s: %w", verticesPath, err)
	}

	fp, err = open(indicesPath)
	if err != nil {
		return m, fmt.Errorf("could not open file %s: %w", indicesPath, err)
	}
	m.Indices, err = ReadIndices(fp)
	fp.Close()
	if err != nil {
		return m, fmt.Errorf("%s: %w", indicesPath, err)
	}
	if err = m.Validate(); err != nil {
		return m, fmt.Errorf("%s, %s: %w", verticesPath, indicesPath, err)
	}
	return m, nil
}
