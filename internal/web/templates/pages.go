package templates

import (
	"github.com/a-h/templ"
)

// EventFormats are the choices offered in the order form's format field.
// The server stores whatever is submitted; this list only drives the form.
var EventFormats = []string{
	"Corporate party",
	"Birthday",
	"Wedding",
	"Team building",
	"Other",
}

func HomePage(site string) templ.Component {
	return Layout(Page{SiteName: site, Title: "Events that people remember", Path: "/"}, section(`
<section class="hero">
  <h1>Events that people remember</h1>
  <p>We plan and host corporate parties, birthdays, weddings and team days from the first call to the last guest leaving.</p>
  <a class="button" href="/order">Leave a request</a>
</section>
<section class="features">
  <article><h2>One contact</h2><p>A single producer handles venue, catering, program and timing.</p></article>
  <article><h2>Clear estimate</h2><p>You get a line-by-line budget before anything is booked.</p></article>
  <article><h2>On the day</h2><p>Our team runs the schedule so you can enjoy the event.</p></article>
</section>`))
}

func FormatsPage(site string) templ.Component {
	return Layout(Page{SiteName: site, Title: "Formats", Path: "/formats"}, section(`
<section>
  <h1>Formats</h1>
  <div class="cards">
    <article><h2>Corporate party</h2><p>Year-end parties, launches and anniversaries for 20 to 500 guests.</p></article>
    <article><h2>Birthday</h2><p>Private celebrations with a host, program and entertainment.</p></article>
    <article><h2>Wedding</h2><p>Ceremony, banquet and the evening program under one plan.</p></article>
    <article><h2>Team building</h2><p>Quests and outdoor games that get departments talking.</p></article>
  </div>
  <p>Not sure which fits? <a href="/order">Tell us about your idea</a> and we will suggest one.</p>
</section>`))
}

func HowItWorksPage(site string) templ.Component {
	return Layout(Page{SiteName: site, Title: "How it works", Path: "/how-it-works"}, section(`
<section>
  <h1>How it works</h1>
  <ol class="steps">
    <li><h2>Request</h2><p>Leave your name and phone number. We call back within one working day.</p></li>
    <li><h2>Brief</h2><p>We agree on the format, date, guest count and budget.</p></li>
    <li><h2>Proposal</h2><p>You receive a program and an itemized estimate.</p></li>
    <li><h2>Event</h2><p>We run the day and send a short report afterwards.</p></li>
  </ol>
</section>`))
}

func CasesPage(site string) templ.Component {
	return Layout(Page{SiteName: site, Title: "Cases", Path: "/cases"}, section(`
<section>
  <h1>Cases</h1>
  <div class="cards">
    <article><h2>Product launch, 300 guests</h2><p>Stage program, live band and a tasting bar in a converted warehouse.</p></article>
    <article><h2>Summer team day, 80 guests</h2><p>Outdoor quest in five teams followed by a barbecue dinner.</p></article>
    <article><h2>Garden wedding, 60 guests</h2><p>Ceremony by the lake, banquet and fireworks at midnight.</p></article>
  </div>
</section>`))
}

func ReviewsPage(site string) templ.Component {
	return Layout(Page{SiteName: site, Title: "Reviews", Path: "/reviews"}, section(`
<section>
  <h1>Reviews</h1>
  <blockquote><p>Everything ran to the minute and nobody on our side had to touch the logistics.</p><cite>HR lead, logistics company</cite></blockquote>
  <blockquote><p>The quest was the first team event people actually talked about on Monday.</p><cite>Engineering manager</cite></blockquote>
  <blockquote><p>They handled a last-minute venue change without us noticing.</p><cite>Newlyweds</cite></blockquote>
</section>`))
}

func FAQPage(site string) templ.Component {
	return Layout(Page{SiteName: site, Title: "FAQ", Path: "/faq"}, section(`
<section>
  <h1>Frequently asked questions</h1>
  <details><summary>How far in advance should we book?</summary><p>Four to six weeks is comfortable. Shorter notice is often possible.</p></details>
  <details><summary>Do you work outside the city?</summary><p>Yes, travel is included in the estimate.</p></details>
  <details><summary>What do you need to prepare an estimate?</summary><p>A format, an approximate date and the number of guests.</p></details>
  <details><summary>Can we change the program after signing?</summary><p>Yes, until a week before the event.</p></details>
</section>`))
}

func ContactsPage(site string) templ.Component {
	return Layout(Page{SiteName: site, Title: "Contacts", Path: "/contacts"}, section(`
<section>
  <h1>Contacts</h1>
  <p>Call us on weekdays from 10:00 to 19:00 or leave a request any time.</p>
  <ul class="contacts">
    <li>Phone: <a href="tel:+10000000000">+1 000 000 0000</a></li>
    <li>Email: <a href="mailto:hello@example.com">hello@example.com</a></li>
  </ul>
  <a class="button" href="/order">Leave a request</a>
</section>`))
}

func ThankYouPage(site string) templ.Component {
	return Layout(Page{SiteName: site, Title: "Thank you", Path: "/thank-you"}, section(`
<section class="thank-you">
  <h1>Thank you!</h1>
  <p>Your request has been received. We will call you back within one working day.</p>
  <a class="button" href="/">Back to the home page</a>
</section>`))
}

func NotFoundPage(site string) templ.Component {
	return Layout(Page{SiteName: site, Title: "Page not found"}, section(`
<section>
  <h1>Page not found</h1>
  <p><a href="/">Go to the home page</a></p>
</section>`))
}
