package chatService

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"jusbook/internal/api/booking"
	"jusbook/internal/entity"
	"jusbook/pkg/nlp"
)

func renderGreeting(customerName string) string {
	hello := "Hello! Welcome to Jusbook 👋\n"
	if customerName != "" {
		hello = fmt.Sprintf("Hello again, %s! Welcome back to Jusbook 👋\n", customerName)
	}
	return hello +
		"I can show you available slots, book or cancel an appointment, " +
		"walk you through our services and prices, and share upcoming events or our contact details.\n\n" +
		"What would you like to do?"
}

func renderHelp() string {
	var b strings.Builder
	b.WriteString("Here's what you can ask me:\n")
	b.WriteString("• \"Show available slots\" (add \"tomorrow\", a date like 2026-10-20, or a service like \"haircut\")\n")
	b.WriteString("• \"Book slot SL092101\", then share your name and 10-digit phone number\n")
	b.WriteString("• \"Cancel BK1A2B3C4D\" to cancel a booking\n")
	b.WriteString("• \"What services do you offer?\"\n")
	b.WriteString("• \"Upcoming events\" (also lists your bookings)\n")
	b.WriteString("• \"Contact information\"\n")
	b.WriteString("\nSay \"start over\" at any time to begin again.")
	return b.String()
}

var fallbackHints = []struct {
	words []string
	hint  string
}{
	{words: []string{"cost", "costs", "price", "fee", "fees", "charge", "charges", "much", "rate", "rates"}, hint: "If you're asking about prices, say \"services\" to see our price list."},
	{words: []string{"where", "located", "directions", "map"}, hint: "Looking for us? Say \"contact\" for our address."},
	{words: []string{"open", "close", "closed", "timing", "time", "sunday"}, hint: "Say \"contact\" to see our opening hours."},
}

func renderFallback(analysis nlp.Analysis) string {
	if analysis.Normalized == "" {
		return "I didn't catch that. " + renderHelp()
	}

	words := make(map[string]bool)
	for _, word := range strings.Fields(analysis.Normalized) {
		words[word] = true
	}

	for _, h := range fallbackHints {
		for _, w := range h.words {
			if words[w] {
				return "I'm not sure I understood that. " + h.hint
			}
		}
	}

	return "I'm not sure I understood that. Type \"help\" to see what I can do."
}

func renderPrompt(flow *entity.PendingFlow, slot *entity.Slot) string {
	var b strings.Builder

	if slot != nil {
		fmt.Fprintf(&b, "Great! Slot %s (%s on %s at %s) is available.\n",
			slot.ID, slot.Service, slot.StartsAt.Format("Mon, 02 Jan"), slot.Time)
	}

	if flow.Intent == nlp.IntentCancelBooking {
		b.WriteString(renderCancelPrompt(""))
		return b.String()
	}

	needName := contains(flow.Missing, entity.FieldCustomerName)
	needContact := contains(flow.Missing, entity.FieldContact)

	switch {
	case contains(flow.Missing, entity.FieldSlotID):
		b.WriteString("Which slot would you like to book? Say \"show slots\" to see what's open.")
	case needName && needContact:
		b.WriteString("Please share your full name and 10-digit phone number, for example: \"Alice Johnson, 9988776655\".")
	case needName:
		b.WriteString("Thanks! What name should I put the booking under? Please give your first and last name.")
	case needContact:
		if name := flow.Collected[entity.FieldCustomerName]; name != "" {
			fmt.Fprintf(&b, "Thanks, %s! ", name)
		}
		b.WriteString("Please share your 10-digit phone number.")
	}

	if flow.Prompts > 0 {
		b.WriteString("\n(Say \"cancel\" to stop this booking.)")
	}
	return b.String()
}

func renderInvalidContact(raw string, flow *entity.PendingFlow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%q doesn't look like a valid phone number. ", raw)
	if name := flow.Collected[entity.FieldCustomerName]; name != "" {
		fmt.Fprintf(&b, "I've noted your name as %s. ", name)
	}
	b.WriteString("Please share a 10-digit phone number.")
	return b.String()
}

func renderBookingConfirmed(b entity.Booking) string {
	return fmt.Sprintf("✅ Booking confirmed!\n"+
		"Booking ID: %s\n"+
		"Name: %s\n"+
		"Phone: %s\n"+
		"Service: %s\n"+
		"When: %s at %s (slot %s)\n\n"+
		"Keep your booking ID handy if you need to cancel.",
		b.ID, b.CustomerName, b.Contact, b.Service, b.Date, b.Time, b.SlotID)
}

func renderBookingAborted() string {
	return "No problem, I've stopped that booking and nothing was reserved. Anything else I can help with?"
}

func renderCancelPrompt(lastBookingID string) string {
	msg := "Please share the booking ID you'd like to cancel (it looks like BK1A2B3C4D)."
	if lastBookingID != "" {
		msg += fmt.Sprintf(" Your most recent booking is %s.", lastBookingID)
	}
	return msg
}

func renderBookingCancelled(b entity.Booking) string {
	return fmt.Sprintf("Your booking %s for %s on %s at %s has been cancelled. Slot %s is open again.",
		b.ID, b.Service, b.Date, b.Time, b.SlotID)
}

func renderBookingNotFound(id string) string {
	return fmt.Sprintf("I couldn't find a booking with ID %s. Please check the ID and try again.", id)
}

func renderAlreadyCancelled(id string) string {
	return fmt.Sprintf("Booking %s was already cancelled.", id)
}

func renderPickSlot(slots []entity.Slot) string {
	if len(slots) == 0 {
		return "Sorry, there are no open slots right now. Please check back later."
	}
	return "Which slot would you like? Here's what's open:\n" + slotLines(slots) +
		"\nReply with the slot ID, for example \"Book slot " + slots[0].ID + "\"."
}

func renderSlotProblem(slotID string, cause error, slots []entity.Slot) string {
	var b strings.Builder
	if errors.Is(cause, booking.ErrSlotUnavailable) {
		fmt.Fprintf(&b, "Sorry, slot %s has already been booked.", slotID)
	} else {
		fmt.Fprintf(&b, "I couldn't find slot %s.", slotID)
	}

	if len(slots) == 0 {
		b.WriteString(" There are no other open slots right now.")
		return b.String()
	}

	b.WriteString(" These slots are open:\n")
	b.WriteString(slotLines(slots))
	return b.String()
}

func renderSlots(slots []entity.Slot, total int, date, service string) string {
	scope := ""
	if service != "" {
		scope += " for " + service
	}
	if date != "" {
		scope += " on " + date
	}

	if len(slots) == 0 {
		return "Sorry, there are no open slots" + scope + ". Try another day or say \"show slots\" to see everything."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Here are the available slots%s:\n", scope)
	b.WriteString(slotLines(slots))
	if more := total - len(slots); more > 0 {
		fmt.Fprintf(&b, "…and %d more.\n", more)
	}
	b.WriteString("\nTo book, say \"Book slot <slot ID>\".")
	return b.String()
}

func slotLines(slots []entity.Slot) string {
	var b strings.Builder
	for _, slot := range slots {
		fmt.Fprintf(&b, "• %s", slot.Label())
		if slot.Price != "" {
			fmt.Fprintf(&b, " (%s)", slot.Price)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderServices(services []entity.Service) string {
	var b strings.Builder
	b.WriteString("Our services:\n")
	for _, s := range services {
		fmt.Fprintf(&b, "• %s - %s (%d min)\n", s.Name, s.Price, s.DurationMinutes)
	}
	b.WriteString("\nAsk for available slots to book one.")
	return b.String()
}

func renderContact(c entity.ContactInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📞 Phone: %s\n", c.Phone)
	fmt.Fprintf(&b, "📧 Email: %s\n", c.Email)
	fmt.Fprintf(&b, "📍 Address: %s\n", c.Address)
	fmt.Fprintf(&b, "🌐 Website: %s\n", c.Website)
	fmt.Fprintf(&b, "🕒 Hours: %s", c.Hours)

	if len(c.Social) > 0 {
		networks := make([]string, 0, len(c.Social))
		for network := range c.Social {
			networks = append(networks, network)
		}
		sort.Strings(networks)

		parts := make([]string, 0, len(networks))
		for _, network := range networks {
			parts = append(parts, fmt.Sprintf("%s %s", strings.ToUpper(network[:1])+network[1:], c.Social[network]))
		}
		b.WriteString("\nFollow us: " + strings.Join(parts, ", "))
	}
	return b.String()
}

func renderEvents(events []entity.Event, bookings []entity.Booking) string {
	var b strings.Builder

	if len(events) == 0 {
		b.WriteString("There are no upcoming events right now.")
	} else {
		b.WriteString("Upcoming events:\n")
		for _, e := range events {
			fmt.Fprintf(&b, "• %s - %s at %s (%s)", e.Title, e.Date, e.Time, e.Price)
			if !e.BookingRequired {
				b.WriteString(", no booking required")
			}
			fmt.Fprintf(&b, "\n  %s\n", e.Description)
		}
	}

	if len(bookings) > 0 {
		b.WriteString("\nYour bookings:\n")
		for _, bk := range bookings {
			fmt.Fprintf(&b, "• %s - %s on %s at %s\n", bk.ID, bk.Service, bk.Date, bk.Time)
		}
	}

	return strings.TrimRight(b.String(), "\n")
}
