package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16  // 64 KiB
)

var sourceExts = []string{".ts", ".tsx", ".mts", ".cts"}

// inlineSeeds покрывают то, на чём лексер и walker ломались бы первыми.
var inlineSeeds = []string{
	"",
	"interface IUser { id: string }\nconst u: IUser = { id: \"1\" }\n",
	"export type TResult<T extends object = {}> = T | null;\n",
	"type UserDto = { name: string };\nfunction toDto(u: UserDto): UserDto { return u }\n",
	"declare module 'x' { export interface IFoo {} }\n",
	"import { IA, type TB as B } from './a';\nimport * as ns from 'b';\n",
	"const re = /I[A-Z]\\//g; const s = `${a}${`${IUser}`}`;\n",
	"class C<T> { #priv = 1; m(): TPoint { return this.#priv as any } }\n",
	"let { a, b: [c, ...d] } = obj; var x = a / b / c;\n",
	"/** doc */ interface ÍUser {}\n// comment\ntype Ünit = void\n",
	"#!/usr/bin/env node\nenum EColor { Red }\nnamespace A.B { }\n",
	"type Broken = `unterminated",
	"interface IA { ",
	"const s = 'unterminated\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

// addTestdataSeeds добавляет TypeScript файлы из testdata пакетов рядом.
func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if !slices.Contains(sourceExts, filepath.Ext(path)) {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
