package main

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/budget-be/internal/models"
	"github.com/hongminglow/budget-be/internal/storage"
	"github.com/hongminglow/budget-be/internal/storage/jsonfile"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_BACKEND", "file")
	t.Setenv("DATA_DIR", dir)
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PORT", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("TIMEZONE", "")
	return dir
}

func storedUsers(t *testing.T, dir string) []models.StoredUser {
	t.Helper()
	store, err := jsonfile.New(dir)
	require.NoError(t, err)
	users, err := storage.NewCollection[models.StoredUser](store, storage.Users).All(context.Background())
	require.NoError(t, err)
	return users
}

func TestRunWithPasswordFlag(t *testing.T) {
	dir := setupEnv(t)
	var stdout, stderr bytes.Buffer

	err := run([]string{"-user", "ana", "-password", "pa55word", "-email", "ana@example.com"}, strings.NewReader(""), &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "User ana created successfully")

	users := storedUsers(t, dir)
	require.Len(t, users, 1)
	assert.Equal(t, "ana", users[0].Name)
	assert.NotEmpty(t, users[0].Password)
	assert.NotEqual(t, "pa55word", users[0].Password)
	require.NotNil(t, users[0].Email)
	assert.Equal(t, "ana@example.com", *users[0].Email)
}

func TestRunReadsPasswordFromStdin(t *testing.T) {
	dir := setupEnv(t)
	var stdout, stderr bytes.Buffer

	err := run([]string{"-user", "bob", "-name", "Bob"}, strings.NewReader("secret\n"), &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Password: ")
	assert.Len(t, storedUsers(t, dir), 1)
}

func TestRunDuplicateUser(t *testing.T) {
	setupEnv(t)
	var out bytes.Buffer
	require.NoError(t, run([]string{"-user", "ana", "-password", "x"}, strings.NewReader(""), &out, &out))

	err := run([]string{"-user", "ana", "-password", "y"}, strings.NewReader(""), &out, &out)
	assert.ErrorContains(t, err, "Username already exists")
}

func TestRunValidation(t *testing.T) {
	setupEnv(t)
	var stdout, stderr bytes.Buffer

	err := run(nil, strings.NewReader(""), &stdout, &stderr)
	assert.ErrorContains(t, err, "missing required flags")

	err = run([]string{"-user", "ana"}, strings.NewReader("   \n"), &stdout, &stderr)
	assert.ErrorContains(t, err, "password cannot be empty")

	err = run([]string{"-user", "ana"}, strings.NewReader(""), &stdout, &stderr)
	assert.Error(t, err)

	err = run([]string{"-h"}, strings.NewReader(""), &stdout, &stderr)
	assert.ErrorIs(t, err, flag.ErrHelp)
}
