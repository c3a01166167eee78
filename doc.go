// Package main provides the pas-profile command. It manages the user profiles
// and access control entries of the PAS services framework: creating the
// tables, seeding an administrator, locking accounts, setting passwords and
// granting or revoking permissions. Data is stored through gorm in MySQL,
// PostgreSQL or SQLite as configured in etc/main.toml.
package main
