package main

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pipedPassword(input string) (string, error) {
	reader := bufio.NewReader(strings.NewReader(input))
	return confirmPassword(func(label string) (string, error) {
		return promptLine(reader, label)
	})
}

func TestConfirmPassword(t *testing.T) {
	password, err := pipedPassword("dog\ndog\n")
	require.NoError(t, err)
	assert.Equal(t, "dog", password)
}

func TestConfirmPasswordMismatch(t *testing.T) {
	_, err := pipedPassword("dog\ncat\n")
	assert.EqualError(t, err, "the two entered values do not match")
}

func TestConfirmPasswordMissingRepeat(t *testing.T) {
	_, err := pipedPassword("dog\n")
	assert.Error(t, err)
}

func TestPromptLineSharesReader(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("admin\ndog\ndog\n"))

	username, err := promptLine(reader, "Username: ")
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	password, err := confirmPassword(func(label string) (string, error) {
		return promptLine(reader, label)
	})
	require.NoError(t, err)
	assert.Equal(t, "dog", password)
}
