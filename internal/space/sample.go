// Copyright (c) 2025 dbxkit
// Licensed under the MIT License. See LICENSE file in the project root for details.

package space

import "fmt"

// Sample returns the example sales space bound to catalog.schema.
// Tables are <catalog>.<schema>.orders and <catalog>.<schema>.customers.
func Sample(catalog, schema string) *Document {
	orders := fmt.Sprintf("%s.%s.orders", catalog, schema)
	customers := fmt.Sprintf("%s.%s.customers", catalog, schema)

	return &Document{
		Version: CurrentVersion,
		Config: Config{
			SampleQuestions: []SampleQuestion{
				{ID: "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6", Question: []string{"What were total sales last month?"}},
				{ID: "b2d46dca936942a081c7d8b5e2e62041", Question: []string{"Show top 10 customers by revenue"}},
				{ID: "3e4b87c9a1d24f41b2a6c9f5d873c201", Question: []string{"Compare sales by region for Q1 vs Q2"}},
			},
		},
		DataSources: DataSources{
			Tables: []Table{
				{Identifier: customers},
				{
					Identifier:  orders,
					Description: []string{"Transactional order data including order date, amount, and customer information"},
					ColumnConfigs: []ColumnConfig{
						{ColumnName: "customer_id", GetExampleValues: Bool(true), BuildValueDictionary: Bool(false)},
						{ColumnName: "order_date", GetExampleValues: Bool(true)},
						{ColumnName: "status", GetExampleValues: Bool(true), BuildValueDictionary: Bool(true)},
					},
				},
			},
		},
		Instructions: Instructions{
			TextInstructions: []TextInstruction{
				{
					ID: "01f0b37c378e1c91aabbccddeeff0011",
					Content: []string{
						"When calculating revenue, sum the order_amount column. " +
							"When asked about 'last month', use the previous calendar month (not the last 30 days). " +
							"Round all monetary values to 2 decimal places.",
					},
				},
			},
			ExampleQuestionSQLs: []ExampleQuestionSQL{
				{
					ID:       "01f0821116d912dbaabbccddeeff0022",
					Question: []string{"Show top 10 customers by revenue"},
					SQL: []string{
						"SELECT customer_name, SUM(order_amount) as total_revenue\n",
						"FROM " + orders + " o\n",
						"JOIN " + customers + " c ON o.customer_id = c.customer_id\n",
						"GROUP BY customer_name\n",
						"ORDER BY total_revenue DESC\n",
						"LIMIT 10",
					},
				},
				{
					ID:       "01f099751a3a1df3aabbccddeeff0033",
					Question: []string{"What were total sales last month"},
					SQL: []string{
						"SELECT SUM(order_amount) as total_sales\n",
						"FROM " + orders + "\n",
						"WHERE order_date >= DATE_TRUNC('month', CURRENT_DATE - INTERVAL 1 MONTH)\n",
						"AND order_date < DATE_TRUNC('month', CURRENT_DATE)",
					},
				},
			},
			SQLSnippets: SQLSnippets{
				Filters: []Filter{
					{
						ID:          "01f09972e66d1aabbccddeeff0055666",
						SQL:         []string{"orders.order_amount > 1000"},
						DisplayName: "high value orders",
						Synonyms:    []string{"large orders", "big purchases"},
					},
				},
				Expressions: []Expression{
					{
						ID:          "01f09974563a1aabbccddeeff0066777",
						Alias:       "order_year",
						SQL:         []string{"YEAR(orders.order_date)"},
						DisplayName: "year",
					},
				},
			},
		},
	}
}
