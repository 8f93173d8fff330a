package main

// @title School Supplies Service API
// @version 1.0
// @description Inventory, stock requests, monthly reports and reconciliation for school supplies

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @tag.name Auth
// @tag.description Authentication endpoints

// @tag.name Users
// @tag.description Own account endpoints

// @tag.name Admin
// @tag.description User administration (admin only)

// @tag.name Supplies
// @tag.description Supply catalogue and stock levels

// @tag.name Transactions
// @tag.description Stock movements

// @tag.name Requests
// @tag.description Stock request workflow

// @tag.name Reports
// @tag.description Monthly reports and dashboard summary

// @tag.name Reconciliation
// @tag.description Physical stock counts

// @tag.name Health
// @tag.description Health check endpoints
