// Package models contains the gorm row definitions for user profiles and
// access control lists.
package models
