package store

import "barberpro/internal/models"

// Built-in seed dataset, used whenever a collection key is absent from
// the blob store (first run) or its payload cannot be decoded.

func SeedServices() []models.Service {
	return []models.Service{
		{
			ID:              "1",
			Name:            "Corte Mestre",
			Description:     "Corte preciso utilizando técnicas modernas de fade e tesoura. Finalização com produtos de elite.",
			Price:           85,
			DurationMinutes: 45,
			IsActive:        true,
		},
		{
			ID:              "2",
			Name:            "Barba Imperial",
			Description:     "Design de barba com visagismo, toalha quente e óleos essenciais de sândalo.",
			Price:           60,
			DurationMinutes: 30,
			IsActive:        true,
		},
		{
			ID:              "3",
			Name:            "O Ritual Completo",
			Description:     "Nossa experiência definitiva: Cabelo, Barba, Sobrancelha e Massagem Capilar relaxante.",
			Price:           130,
			DurationMinutes: 75,
			IsCombo:         true,
			IsActive:        true,
		},
		{
			ID:              "4",
			Name:            "Fade Executivo",
			Description:     "Degradê cirúrgico para profissionais que exigem perfeição constante em sua imagem.",
			Price:           75,
			DurationMinutes: 40,
			IsActive:        true,
		},
	}
}

func SeedProducts() []models.Product {
	return []models.Product{
		{ID: "p1", Name: "Pomada Matte Clay", Price: 89, Category: "Estilo"},
		{ID: "p2", Name: "Óleo Sândalo Noir", Price: 65, Category: "Cuidado"},
		{ID: "p3", Name: "Shampoo Signature", Price: 55, Category: "Higiene"},
		{ID: "p4", Name: "Loção Pós Barba", Price: 72, Category: "Cuidado"},
	}
}

func SeedStaff() []models.Barber {
	return []models.Barber{
		{
			ID:                "b1",
			Name:              `Marco "A Lâmina"`,
			Specialties:       []string{"Clássico", "Barba"},
			Rating:            4.9,
			Bio:               "15 anos de tradição esculpindo identidades clássicas com precisão absoluta.",
			Status:            models.BarberBusy,
			NextAvailableSlot: "16:30",
		},
		{
			ID:          "b2",
			Name:        "Leo Fade",
			Specialties: []string{"Degradê", "Moderno"},
			Rating:      4.8,
			Bio:         "Mestre das texturas e fades urbanos. A arte do degradê levada ao extremo.",
			Status:      models.BarberAvailable,
		},
	}
}
