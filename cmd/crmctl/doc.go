// Command crmctl is the terminal client for the CRM-System API.
//
// Install:
//
//	go install crmctl/cmd/crmctl@latest
//
// First steps:
//
//	crmctl sandbox &          # optional: local demo server with seed data
//	crmctl login --email admin@crm.local
//	crmctl dashboard
//	crmctl tasks list
//
// Administrators additionally manage customers, leads, sales deals and
// purchases:
//
//	crmctl customers list
//	crmctl leads add --name Globex --source Web
//	crmctl report profit
//
// Sales representatives see the dashboard and their own tasks only, and
// may mark those tasks done:
//
//	crmctl tasks done 4
//
// The session (token, role, display name) is stored under the user config
// directory and cleared by 'crmctl logout'.
package main
