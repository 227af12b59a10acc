package cli

const usageTemplate = `
MajiDesk Client

Usage:
  majidesk [OPTIONS] COMMAND

Options:
  --version        Show version information
  --server URL     Server URL (default: http://localhost:8000)
  --db PATH        Path to local database (default: majidesk-client.db)
  --debug          Enable debug logging

Commands:
  login                       Login with phone number and password
  logout                      Logout and delete the local session
  status                      Show authentication status
  dashboard                   Show today's shop summary
  shops list                  List shops
  customers list [SEARCH]     List customers, optionally filtered
  customers add               Register a new customer
  sales list                  List sales
  sales add                   Record a sale
  refills list                List refills
  refills add                 Record a bottle refill
  stock list                  List stock items
  stock add                   Add a stock item
  stock log                   Record a stock movement
  expenses list               List expenses
  expenses add [RECEIPT]      Record an expense, optionally with a receipt image
  meter list                  List meter readings
  meter add PHOTO             Submit a meter reading with a photo
  credits list                List outstanding customer credits
  credits pay ID              Record a credit repayment
  sms send                    Send an SMS to one recipient
  sms bulk                    Send an SMS to many customers
  sms history                 Show sent SMS history

Examples:
  majidesk login
  majidesk customers list jane
  majidesk sales add
  majidesk meter add ./reading.jpg
  majidesk --server https://api.example.com dashboard
`

func (c *Cli) PrintUsage() {
	c.io.Println(usageTemplate)
}
