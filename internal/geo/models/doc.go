// Package models holds the geographic records served by the API and the
// filters that narrow listings. Records mirror the database rows one to one;
// filters translate their present fields into query conditions.
package models
