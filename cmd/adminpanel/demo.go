package main

import "github.com/jask/adminpanel/internal/api"

// Demo records for --offline.
var (
	demoClients = []api.Client{
		{ID: 1, Name: "Ana Martin", Email: "ana.martin@example.com", City: "Lyon"},
		{ID: 2, Name: "Bruno Leroy", Email: "bruno.leroy@example.com", City: "Nantes"},
		{ID: 3, Name: "Chloé Dubois", Email: "chloe.dubois@example.com", City: "Lille"},
	}
	demoProducts = []api.Product{
		{ID: 1, Name: "Stylo bleu", Price: 1.5, Stock: 40},
		{ID: 2, Name: "Cahier A4", Price: 3.9, Stock: 12},
		{ID: 3, Name: "Agrafeuse", Price: 12, Stock: 0},
	}
	demoOrders = []api.Order{
		{ID: 1, ClientID: 1, ProductID: 2, Quantity: 3},
		{ID: 2, ClientID: 2, ProductID: 1, Quantity: 10},
	}
)
