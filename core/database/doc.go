// Package database provides the MySQL connection used by the database
// snapshot source. It wraps GORM with sane pool settings and an initial
// ping so a misconfigured deployment fails fast instead of on the first
// join pass.
package database
