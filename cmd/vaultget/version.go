package main

import "github.com/vaultget/vaultget/internal/version"

func getVersionString() string {
	return version.GetVersionString()
}
