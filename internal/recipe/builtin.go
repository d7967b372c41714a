package recipe

import (
	"time"

	"github.com/hammamikhairi/souschef/internal/domain"
)

func builtins() []*domain.Recipe {
	return []*domain.Recipe{
		buttermilkPancakes(),
		chickenAlfredo(),
		vegetableStirFry(),
	}
}

func buttermilkPancakes() *domain.Recipe {
	return &domain.Recipe{
		ID:          "buttermilk-pancakes",
		Title:       "Buttermilk Pancakes",
		Description: "Tall, fluffy weekend pancakes. Lumpy batter is fine; overmixed batter is not.",
		Servings:    4,
		Tags:        []string{"breakfast", "vegetarian", "quick"},
		Ingredients: []domain.Ingredient{
			{Name: "all-purpose flour", Amount: 2, Unit: "cups"},
			{Name: "sugar", Amount: 2, Unit: "tablespoons"},
			{Name: "baking powder", Amount: 2, Unit: "teaspoons"},
			{Name: "baking soda", Amount: 0.5, Unit: "teaspoon"},
			{Name: "salt", Amount: 0.5, Unit: "teaspoon"},
			{Name: "buttermilk", Amount: 2, Unit: "cups"},
			{Name: "eggs", Amount: 2, Unit: "pieces"},
			{Name: "butter", Amount: 3, Unit: "tablespoons", Notes: "melted"},
			{Name: "blueberries", Amount: 1, Unit: "cup", Optional: true},
		},
		Instructions: []domain.Instruction{
			{Step: 1, Text: "Whisk the flour, sugar, baking powder, baking soda and salt in a large bowl."},
			{Step: 2, Text: "In another bowl whisk the buttermilk, eggs and melted butter. Fold the wet into the dry until just combined, then rest the batter.", Duration: 5 * time.Minute},
			{Step: 3, Text: "Heat a griddle over medium heat and brush with butter.", Duration: 2 * time.Minute},
			{Step: 4, Text: "Pour a quarter cup of batter per pancake. Flip when bubbles pop on the surface, about 2 minutes, then cook 1 minute more.", Duration: 3 * time.Minute},
		},
	}
}

func chickenAlfredo() *domain.Recipe {
	return &domain.Recipe{
		ID:          "chicken-alfredo",
		Title:       "Chicken Alfredo",
		Description: "Creamy spaghetti alfredo with pan-seared chicken. Rich, indulgent, and not from a jar.",
		Servings:    2,
		Tags:        []string{"italian", "pasta", "chicken", "comfort"},
		Ingredients: []domain.Ingredient{
			{Name: "spaghetti", Amount: 250, Unit: "grams"},
			{Name: "chicken breast", Amount: 2, Unit: "pieces", Notes: "medium"},
			{Name: "heavy cream", Amount: 1, Unit: "cup"},
			{Name: "parmesan", Amount: 1, Unit: "cup", Notes: "grated"},
			{Name: "butter", Amount: 3, Unit: "tablespoons"},
			{Name: "garlic", Amount: 4, Unit: "cloves", Notes: "minced"},
			{Name: "olive oil", Amount: 1, Unit: "tablespoon"},
			{Name: "salt", Notes: "to taste"},
			{Name: "black pepper", Notes: "to taste"},
		},
		Instructions: []domain.Instruction{
			{Step: 1, Text: "Bring a large pot of salted water to a boil for the pasta. It should taste like the sea.", Duration: 8 * time.Minute},
			{Step: 2, Text: "Season the chicken on both sides and pound it to an even thickness so the thin end doesn't dry out."},
			{Step: 3, Text: "Sear the chicken in olive oil over medium-high heat, about 6 minutes per side, until it reaches 74°C inside. Rest it.", Duration: 12 * time.Minute},
			{Step: 4, Text: "Cook the spaghetti until al dente. Reserve a cup of pasta water before draining.", Duration: 10 * time.Minute},
			{Step: 5, Text: "Melt the butter in the same skillet and cook the garlic until fragrant. Don't let it burn.", Duration: time.Minute},
			{Step: 6, Text: "Stir in the cream and simmer until it coats the back of a spoon.", Duration: 3 * time.Minute},
			{Step: 7, Text: "Off the heat, stir in the parmesan until smooth. Loosen with pasta water if needed."},
			{Step: 8, Text: "Slice the chicken, toss the pasta in the sauce and serve right away."},
		},
	}
}

func vegetableStirFry() *domain.Recipe {
	return &domain.Recipe{
		ID:          "vegetable-stir-fry",
		Title:       "Vegetable Stir Fry",
		Description: "Fast, crunchy, and customizable. The key is a screaming hot pan and not overcrowding it.",
		Servings:    2,
		Tags:        []string{"asian", "vegetables", "quick", "vegan", "healthy"},
		Ingredients: []domain.Ingredient{
			{Name: "bell pepper", Amount: 1, Unit: "pieces", Notes: "large"},
			{Name: "broccoli florets", Amount: 2, Unit: "cups"},
			{Name: "carrot", Amount: 1, Unit: "pieces", Notes: "julienned"},
			{Name: "snap peas", Amount: 1, Unit: "cup"},
			{Name: "garlic", Amount: 3, Unit: "cloves"},
			{Name: "fresh ginger", Amount: 1, Unit: "tablespoon", Notes: "grated"},
			{Name: "soy sauce", Amount: 2, Unit: "tablespoons"},
			{Name: "sesame oil", Amount: 1, Unit: "tablespoon"},
			{Name: "vegetable oil", Amount: 2, Unit: "tablespoons"},
			{Name: "cornstarch", Amount: 1, Unit: "teaspoon", Optional: true},
			{Name: "rice", Amount: 1, Unit: "cup", Optional: true},
		},
		Instructions: []domain.Instruction{
			{Step: 1, Text: "If serving with rice, start the rice first.", Duration: 18 * time.Minute},
			{Step: 2, Text: "Prep every vegetable before the pan goes on: slice the pepper, cut the broccoli small, julienne the carrot, mince the garlic."},
			{Step: 3, Text: "Mix the soy sauce, sesame oil and cornstarch with 2 tablespoons of water."},
			{Step: 4, Text: "Heat the wok on high until it just smokes, then add the vegetable oil."},
			{Step: 5, Text: "Stir-fry broccoli and carrot for 2 minutes, then the pepper and snap peas for 2 more. Let things char.", Duration: 4 * time.Minute},
			{Step: 6, Text: "Push the vegetables aside and fry the garlic and ginger in the middle until fragrant.", Duration: 30 * time.Second},
			{Step: 7, Text: "Pour in the sauce and toss until glossy.", Duration: 30 * time.Second},
			{Step: 8, Text: "Serve immediately over rice."},
		},
	}
}
