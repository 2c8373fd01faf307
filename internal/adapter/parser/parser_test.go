package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codemap/internal/domain"
)

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func findSymbol(file domain.IndexedFile, name string) (domain.Symbol, bool) {
	for _, s := range file.Symbols {
		if s.Name == name {
			return s, true
		}
	}
	return domain.Symbol{}, false
}

func hasString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

func TestParseFile_Go(t *testing.T) {
	src := `// Package demo does things.
package demo

import "fmt"

// Greet says hello.
func Greet(name string) string {
	return fmt.Sprintf("hi %s", name)
}

type Server struct {
}

func (s *Server) start() error {
	return nil
}

const MaxRetries = 3

var debug = false
`
	path := writeFixture(t, "demo.go", src)
	file, err := New(0).ParseFile(path, domain.LangGo)
	if err != nil {
		t.Fatal(err)
	}

	greet, ok := findSymbol(file, "Greet")
	if !ok {
		t.Fatal("Greet not found")
	}
	if greet.Kind != domain.KindFunction {
		t.Errorf("Greet kind = %s, want function", greet.Kind)
	}
	if greet.Line != 7 {
		t.Errorf("Greet line = %d, want 7", greet.Line)
	}
	if greet.Doc != "Greet says hello." {
		t.Errorf("Greet doc = %q", greet.Doc)
	}

	if srv, ok := findSymbol(file, "Server"); !ok || srv.Kind != domain.KindStruct {
		t.Errorf("Server = %+v, ok=%v, want struct", srv, ok)
	}
	if start, ok := findSymbol(file, "start"); !ok || start.Kind != domain.KindMethod {
		t.Errorf("start = %+v, ok=%v, want method", start, ok)
	}
	if c, ok := findSymbol(file, "MaxRetries"); !ok || c.Kind != domain.KindConstant {
		t.Errorf("MaxRetries = %+v, ok=%v, want constant", c, ok)
	}
	if v, ok := findSymbol(file, "debug"); !ok || v.Kind != domain.KindVariable {
		t.Errorf("debug = %+v, ok=%v, want variable", v, ok)
	}
	if pkg, ok := findSymbol(file, "demo"); !ok || pkg.Kind != domain.KindModule {
		t.Errorf("demo = %+v, ok=%v, want module", pkg, ok)
	}

	if !hasString(file.Imports, "fmt") {
		t.Errorf("imports = %v, want fmt", file.Imports)
	}
	if !hasString(file.Exports, "Greet") || !hasString(file.Exports, "MaxRetries") {
		t.Errorf("exports = %v, want Greet and MaxRetries", file.Exports)
	}
	if hasString(file.Exports, "start") || hasString(file.Exports, "debug") {
		t.Errorf("exports = %v, unexported names leaked", file.Exports)
	}
	if file.Hash == 0 {
		t.Error("expected non-zero content hash")
	}
}

func TestParseFile_Rust(t *testing.T) {
	src := `use std::collections::HashMap;

/// A user record.
pub struct User {
    name: String,
}

impl User {
    pub fn new(name: String) -> Self {
        User { name }
    }
}

pub fn parse<T>(input: &str) -> T {
}

pub enum Status {
}
`
	path := writeFixture(t, "lib.rs", src)
	file, err := New(0).ParseFile(path, domain.LangRust)
	if err != nil {
		t.Fatal(err)
	}

	user, ok := findSymbol(file, "User")
	if !ok || user.Kind != domain.KindStruct {
		t.Fatalf("User = %+v, ok=%v, want struct", user, ok)
	}
	if user.Doc != "A user record." {
		t.Errorf("User doc = %q", user.Doc)
	}

	if m, ok := findSymbol(file, "new"); !ok || m.Kind != domain.KindMethod {
		t.Errorf("new = %+v, ok=%v, want method (indented fn)", m, ok)
	}
	if f, ok := findSymbol(file, "parse"); !ok || f.Kind != domain.KindFunction {
		t.Errorf("parse = %+v, ok=%v, want function with generics stripped", f, ok)
	}
	if e, ok := findSymbol(file, "Status"); !ok || e.Kind != domain.KindEnum {
		t.Errorf("Status = %+v, ok=%v, want enum", e, ok)
	}

	if !hasString(file.Imports, "std::collections::HashMap") {
		t.Errorf("imports = %v", file.Imports)
	}
	if !hasString(file.Exports, "User") || !hasString(file.Exports, "parse") {
		t.Errorf("exports = %v", file.Exports)
	}
}

func TestParseFile_Zig(t *testing.T) {
	src := `const std = @import("std");

pub const Config = struct {
    port: u16,
};

pub fn init(allocator: Allocator) Config {
}

const max_port = 65535;
`
	path := writeFixture(t, "main.zig", src)
	file, err := New(0).ParseFile(path, domain.LangZig)
	if err != nil {
		t.Fatal(err)
	}

	if c, ok := findSymbol(file, "Config"); !ok || c.Kind != domain.KindStruct {
		t.Errorf("Config = %+v, ok=%v, want struct recovered from keyword-after-name form", c, ok)
	}
	if f, ok := findSymbol(file, "init"); !ok || f.Kind != domain.KindFunction {
		t.Errorf("init = %+v, ok=%v, want function", f, ok)
	}
	if c, ok := findSymbol(file, "max_port"); !ok || c.Kind != domain.KindConstant {
		t.Errorf("max_port = %+v, ok=%v, want constant", c, ok)
	}
	if !hasString(file.Imports, "std") {
		t.Errorf("imports = %v, want std", file.Imports)
	}
}

func TestParseFile_Python(t *testing.T) {
	src := `import os, sys
from collections import OrderedDict

class Parser:
    def parse(self, text):
        pass

def top_level(x):
    pass

def _private():
    pass
`
	path := writeFixture(t, "mod.py", src)
	file, err := New(0).ParseFile(path, domain.LangPython)
	if err != nil {
		t.Fatal(err)
	}

	if c, ok := findSymbol(file, "Parser"); !ok || c.Kind != domain.KindClass {
		t.Errorf("Parser = %+v, ok=%v, want class", c, ok)
	}
	if m, ok := findSymbol(file, "parse"); !ok || m.Kind != domain.KindMethod {
		t.Errorf("parse = %+v, ok=%v, want method (indented def)", m, ok)
	}
	if f, ok := findSymbol(file, "top_level"); !ok || f.Kind != domain.KindFunction {
		t.Errorf("top_level = %+v, ok=%v, want function", f, ok)
	}

	for _, want := range []string{"os", "sys", "collections"} {
		if !hasString(file.Imports, want) {
			t.Errorf("imports = %v, want %s", file.Imports, want)
		}
	}
	if hasString(file.Exports, "_private") {
		t.Errorf("exports = %v, underscore name leaked", file.Exports)
	}
}

func TestParseFile_TypeScript(t *testing.T) {
	src := `import { readFile } from "fs";

export interface Options {
}

export const load = (path: string) => {
}

enum Mode {
}

export type Result = string;
`
	path := writeFixture(t, "index.ts", src)
	file, err := New(0).ParseFile(path, domain.LangTypeScript)
	if err != nil {
		t.Fatal(err)
	}

	if i, ok := findSymbol(file, "Options"); !ok || i.Kind != domain.KindInterface {
		t.Errorf("Options = %+v, ok=%v, want interface", i, ok)
	}
	if f, ok := findSymbol(file, "load"); !ok || f.Kind != domain.KindFunction {
		t.Errorf("load = %+v, ok=%v, arrow const should be a function", f, ok)
	}
	if e, ok := findSymbol(file, "Mode"); !ok || e.Kind != domain.KindEnum {
		t.Errorf("Mode = %+v, ok=%v, want enum", e, ok)
	}
	if a, ok := findSymbol(file, "Result"); !ok || a.Kind != domain.KindTypeAlias {
		t.Errorf("Result = %+v, ok=%v, want type-alias", a, ok)
	}

	if !hasString(file.Imports, "fs") {
		t.Errorf("imports = %v, want fs", file.Imports)
	}
	if !hasString(file.Exports, "Options") || !hasString(file.Exports, "load") {
		t.Errorf("exports = %v", file.Exports)
	}
	if hasString(file.Exports, "Mode") {
		t.Errorf("exports = %v, non-exported enum leaked", file.Exports)
	}
}

func TestParseFile_C(t *testing.T) {
	src := `#include <stdio.h>
#include "util.h"

#define MAX_LEN 256

typedef unsigned long usize;

struct point {
};

static int add(int a, int b) {
}
`
	path := writeFixture(t, "main.c", src)
	file, err := New(0).ParseFile(path, domain.LangC)
	if err != nil {
		t.Fatal(err)
	}

	if c, ok := findSymbol(file, "MAX_LEN"); !ok || c.Kind != domain.KindConstant {
		t.Errorf("MAX_LEN = %+v, ok=%v, want constant", c, ok)
	}
	if a, ok := findSymbol(file, "usize"); !ok || a.Kind != domain.KindTypeAlias {
		t.Errorf("usize = %+v, ok=%v, typedef name should be recovered backward", a, ok)
	}
	if s, ok := findSymbol(file, "point"); !ok || s.Kind != domain.KindStruct {
		t.Errorf("point = %+v, ok=%v, want struct", s, ok)
	}
	if f, ok := findSymbol(file, "add"); !ok || f.Kind != domain.KindFunction {
		t.Errorf("add = %+v, ok=%v, want function", f, ok)
	}

	if !hasString(file.Imports, "stdio.h") || !hasString(file.Imports, "util.h") {
		t.Errorf("imports = %v", file.Imports)
	}
}

func TestParseFile_Java(t *testing.T) {
	src := `package com.example.app;

import java.util.List;

public class Widget {
    public int getCount() {
    }
}

class Box<T> {
}
`
	path := writeFixture(t, "Widget.java", src)
	file, err := New(0).ParseFile(path, domain.LangJava)
	if err != nil {
		t.Fatal(err)
	}

	if p, ok := findSymbol(file, "com.example.app"); !ok || p.Kind != domain.KindModule {
		t.Errorf("package = %+v, ok=%v, want module", p, ok)
	}
	if c, ok := findSymbol(file, "Widget"); !ok || c.Kind != domain.KindClass {
		t.Errorf("Widget = %+v, ok=%v, want class", c, ok)
	}
	if m, ok := findSymbol(file, "getCount"); !ok || m.Kind != domain.KindMethod {
		t.Errorf("getCount = %+v, ok=%v, want method", m, ok)
	}
	if b, ok := findSymbol(file, "Box"); !ok || b.Kind != domain.KindClass {
		t.Errorf("Box = %+v, ok=%v, generics should be stripped", b, ok)
	}

	if !hasString(file.Imports, "java.util.List") {
		t.Errorf("imports = %v", file.Imports)
	}
	if !hasString(file.Exports, "Widget") || !hasString(file.Exports, "getCount") {
		t.Errorf("exports = %v", file.Exports)
	}
	if hasString(file.Exports, "Box") {
		t.Errorf("exports = %v, package-private class leaked", file.Exports)
	}
}

func TestParseFile_UnsupportedLanguage(t *testing.T) {
	path := writeFixture(t, "data.go", "func Something() {}\n")
	file, err := New(0).ParseFile(path, domain.LangUnknown)
	if err != nil {
		t.Fatal(err)
	}
	if len(file.Symbols) != 0 || len(file.Imports) != 0 {
		t.Errorf("unsupported language should index empty lists, got %+v", file)
	}
	if file.Path != path || file.Hash == 0 {
		t.Errorf("metadata should survive: %+v", file)
	}
}

func TestParseFile_TooLarge(t *testing.T) {
	path := writeFixture(t, "big.go", "package big\n// padding padding padding\n")
	_, err := New(10).ParseFile(path, domain.LangGo)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("err = %v, want ErrFileTooLarge", err)
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := New(0).ParseFile(filepath.Join(t.TempDir(), "gone.go"), domain.LangGo)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}

func TestParseFile_MalformedLinesSkipped(t *testing.T) {
	src := "package ok\nfunc \ntype \nfunc )( {\nfunc Fine() {\n"
	path := writeFixture(t, "weird.go", src)
	file, err := New(0).ParseFile(path, domain.LangGo)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := findSymbol(file, "Fine"); !ok {
		t.Errorf("Fine should still be extracted, symbols = %+v", file.Symbols)
	}
}

func TestStripGenerics(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Box<T>", "Box"},
		{"Map<K, V>", "Map"},
		{"Plain", "Plain"},
	}
	for _, tt := range tests {
		if got := stripGenerics(tt.in); got != tt.want {
			t.Errorf("stripGenerics(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIdentBefore(t *testing.T) {
	s := "const Config = struct {"
	idx := strings.Index(s, "= struct")
	if got := identBefore(s, idx, ""); got != "Config" {
		t.Errorf("identBefore = %q, want Config", got)
	}
}
